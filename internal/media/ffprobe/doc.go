// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no memmet-specific dependencies.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: per-stream codec, geometry and color properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Parse: decodes an ffprobe JSON document captured elsewhere
package ffprobe
