// Package probe turns ffprobe output into the per-input track facts the
// concat pipeline works with.
//
// A TrackInfo records the first video and first audio stream index of a file
// and its color space and geometry. The color space and geometry are taken
// from whichever stream reported them last, not necessarily the selected
// video stream; callers that need per-stream detail should use the ffprobe
// package directly.
package probe
