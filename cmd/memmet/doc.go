// Package main hosts the memmet CLI entrypoint and command graph.
//
// The root command concatenates videos. Subcommands manage the persisted
// defaults record and the settings file, inspect inputs, and run the
// installation checks. The package centralizes configuration directory
// resolution, settings loading, and structured logging setup so commands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
