// Package directive turns a selection result into the ordered instructions
// handed to the transcoder.
//
// Emit produces one map directive per retained stream (other-kind streams
// first, then audio, then subtitles, each in container order) followed by
// the metadata-strip directives. The sequence is a pure function of its
// inputs so identical selections always render identical commands.
package directive
