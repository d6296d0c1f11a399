// Package defaults persists the user's default run parameters in a single
// JSON record under the per-user configuration directory.
//
// Open creates the directory and the record file when missing; an empty file
// is an all-defaults record. Set merges only the fields present in the update
// and rewrites the whole file. The store does no locking, so concurrent
// writers race and the last one wins; see package runlock for serializing
// whole invocations.
package defaults
