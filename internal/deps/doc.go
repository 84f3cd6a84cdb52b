// Package deps resolves the external binaries tidymux shells out to and
// reports their availability for the check command and startup preflight.
package deps
