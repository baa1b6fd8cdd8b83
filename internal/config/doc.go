// Package config loads and validates crate configuration from TOML files,
// normalizing all path fields to absolute form.
package config
