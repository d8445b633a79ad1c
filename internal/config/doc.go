// Package config loads, normalizes, and validates vesper's TOML configuration.
package config
