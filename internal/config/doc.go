// Package config loads and validates commentwatch configuration.
//
// Configuration lives in a TOML file, by default at
// ~/.config/commentwatch/config.toml. Missing files are not an error:
// defaults apply, so the tool works out of the box once the scoring
// worker command is reachable.
package config
