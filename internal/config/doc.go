// Package config loads, normalizes, and validates butler's TOML configuration.
//
// Configuration resolution order: an explicit --config path, then
// ~/.config/butler/config.toml, then ./butler.toml, then built-in defaults.
// All path fields are tilde-expanded and made absolute during Load.
package config
