// Package fileutil holds the file moves tidymux performs when a cleaned file
// replaces its input.
package fileutil
