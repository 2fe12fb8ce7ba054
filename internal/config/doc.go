// Package config loads, normalizes, and validates subweave's TOML
// configuration. Load applies repository defaults first, then overlays the
// user's file, so a minimal config stays valid.
package config
