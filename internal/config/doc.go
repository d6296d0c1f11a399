// Package config loads, normalizes, and validates memmet tool settings.
//
// Settings live in an optional settings.toml next to the persisted defaults
// record. They name the ffmpeg and ffprobe executables, the video codec handed
// to the engine, the synthetic silence source, and the log level and format.
// A missing file yields Default(); a present file only overrides the keys it
// sets.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
