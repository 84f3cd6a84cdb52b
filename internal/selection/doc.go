// Package selection decides which probed streams survive a clean.
//
// Streams are numbered per kind in container order (video, data, and
// attachment streams take no slot), and each kind's selector from the rule
// set decides retention against that numbering. A kind without a selector
// keeps everything; dropping every stream of a kind is allowed.
//
// Primary entry point:
//   - Select: produces one Decision per stream, preserving container order
package selection
