// Package config loads, normalizes, and validates basecat configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the search directories scanned for base sets, the state
// directory holding the catalog database, the declared set kinds with
// their required file slots, and display and logging preferences.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
