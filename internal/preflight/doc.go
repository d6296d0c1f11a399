// Package preflight provides readiness checks for the external tools and
// filesystem paths that memmet depends on.
//
// These checks run in two contexts:
//   - The root concat run calls RequireBinaries before probing so a missing
//     ffmpeg or ffprobe fails fast with one clear message.
//   - The CLI "memmet check" command calls RunAll and renders every result.
package preflight
