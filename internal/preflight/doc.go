// Package preflight provides readiness checks for the binaries and
// filesystem paths tidymux depends on.
//
// These checks run in two contexts:
//   - The clean command calls RunAll before touching any file. If a check
//     fails, the batch stops before probing.
//   - The "tidymux check" command renders the same results as a table.
package preflight
