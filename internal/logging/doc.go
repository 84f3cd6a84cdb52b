// Package logging assembles the structured slog loggers used across tidymux.
//
// It owns the console and JSON handlers, maps config levels onto slog, and
// exposes context helpers so per-file code tags every line with the batch
// run id and the file being cleaned. Log output goes to stderr by default;
// stdout is reserved for command output such as dry-run commands and the
// paths of cleaned files. NewNop serves tests and wiring that cannot fail.
package logging
