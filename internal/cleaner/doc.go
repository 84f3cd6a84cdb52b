// Package cleaner drives a batch: it discovers media files, probes each one,
// selects streams against the rule set, emits directives, and either prints
// the resulting ffmpeg command (dry run) or executes it.
//
// Files are processed one after another. A file that fails to probe or whose
// ffmpeg run fails is reported and skipped; cancellation stops the batch.
// Cleaned output paths are written to the configured output writer so they
// can be piped, while progress and reports go to the logger.
package cleaner
