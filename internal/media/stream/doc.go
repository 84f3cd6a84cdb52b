// Package stream turns ffprobe output into immutable stream descriptors.
//
// Each Descriptor records the container index, the selector-facing Kind
// (audio, subtitle, or other), and the language tag. FromProbe is the only
// constructor; it rejects unclassifiable codec types and out-of-order indexes
// with a ProbeParseError so callers can skip the offending file.
package stream
