// Package rules turns raw keep/remove options into a validated RuleSet.
//
// Six inputs are accepted: the combined --keep/--remove, which apply to both
// audio and subtitles, and the per-kind --keep-audio, --remove-audio,
// --keep-subtitles, and --remove-subtitles. Build merges them into at most one
// Selector per kind and reports contradictory combinations as a
// ConflictError before any file is touched.
//
// Each comma-separated value is classified once into a Token: a non-negative
// integer is a zero-based track index within its kind, anything else is a
// language code compared through the language package.
package rules
