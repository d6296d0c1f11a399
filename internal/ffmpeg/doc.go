// Package ffmpeg renders concat invocations into ffmpeg argument lists and
// runs them as a single blocking child process.
//
// The driver always captures the child's stderr. Callers ask for the captured
// text when they want to surface it (debug runs); failures include its tail
// regardless so the CLI can report why the engine stopped.
package ffmpeg
