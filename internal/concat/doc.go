// Package concat runs one concatenation job end to end.
//
// Runner resolves the effective parameters (call-site values first, then the
// persisted defaults record, then built-in fallbacks), expands and probes the
// inputs, drops inputs that cannot be concatenated, resolves the canonical
// geometry, builds the filter graph, confirms overwrites, and finally hands the
// invocation to the engine. Every step runs in sequence on the caller's
// goroutine; the engine is the only blocking child process.
package concat
