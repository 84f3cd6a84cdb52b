// Package ffmpeg renders directive sequences into ffmpeg stream-copy
// invocations and runs them.
//
// BuildArgs is pure and deterministic. Runner executes one job at a time:
// it takes an advisory lock beside the output, streams progress derived from
// output growth, keeps a bounded stderr tail for *ExitError, and removes the
// partial output when ffmpeg fails or the context is cancelled.
package ffmpeg
