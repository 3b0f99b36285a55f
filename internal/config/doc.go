// Package config loads, normalizes, and validates the assetassist
// configuration from a YAML file or environment variables.
package config
