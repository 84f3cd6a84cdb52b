// Package config loads, normalizes, and validates tidymux configuration.
//
// Configuration lives in TOML (~/.config/tidymux/config.toml or ./tidymux.toml)
// and is decoded on top of repository defaults. Load expands the output
// directory, resolves tool binaries from the environment, canonicalizes the
// media extension list, and rejects conflicting default selection rules before
// any file is touched.
package config
