// Package main hosts the tidymux CLI entrypoint and command graph.
//
// The root command cleans the media files and directories it is given:
// selection flags (or the config file's [selection] defaults) become a rule
// set, each file is probed, and ffmpeg stream-copies the retained streams.
// Subcommands scaffold and validate configuration and report dependency
// status.
//
// Keep this package lean: behaviour lives in the internal packages and is
// only wired and rendered here.
package main
