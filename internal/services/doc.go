// Package services defines shared utilities consumed by the concat pipeline
// and its external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the run identifier and the input currently
//     being probed, for logging.
//   - Structured error markers plus the Wrap helper, so the CLI and tests can
//     classify failures with errors.Is regardless of how deeply they were
//     wrapped.
//
// Every failure in this tool is terminal; there are no retry classes.
package services
