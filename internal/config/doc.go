// Package config loads, validates, and normalizes platter's TOML
// configuration.
package config
