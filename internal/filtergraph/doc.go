// Package filtergraph builds the ffmpeg -filter_complex expression and -map
// targets that scale, pad and concatenate the accepted inputs.
//
// Every input i gets a clause that fits its video inside the canonical
// geometry, fixes DAR and SAR, pads it centred and binds the result to the
// label in<i>. The final concat clause consumes each video label and, unless
// audio is disabled, each audio reference. Inputs without audio share one
// synthetic silence input which the caller appends after all real inputs.
package filtergraph
