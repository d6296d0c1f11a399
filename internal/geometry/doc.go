// Package geometry resolves the canonical output width and height every
// input is scaled and padded to before concatenation.
//
// A Policy is either an explicit pixel pair, "largest" (the input with the
// biggest area, first one on ties) or "smallest". Smallest is accepted by
// the parser and persisted like any other value, but Resolve always rejects
// it with services.ErrUnsupportedPolicy.
package geometry
