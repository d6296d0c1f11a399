package concat

import (
	"context"

	"memmet/internal/inputs"
	"memmet/internal/probe"
	"memmet/internal/services"
)

// Status classifies an inspected input.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusReserved Status = "reserved"
	StatusFailed   Status = "failed"
)

// Inspection is the probe outcome for one discovered file. Size is the
// container size ffprobe reported, zero for failed inputs.
type Inspection struct {
	Path   string
	Size   int64
	Status Status
	Info   probe.TrackInfo
	Err    error
}

// Inspect expands paths and probes every discovered file without stopping at
// the first failure. Only discovery errors are returned.
func (r *Runner) Inspect(ctx context.Context, paths []string) ([]Inspection, error) {
	files, err := inputs.Expand(paths)
	if err != nil {
		return nil, services.Wrap(services.ErrProbeFailure, "concat", "expand inputs", "", err)
	}

	results := make([]Inspection, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := Inspection{Path: path}
		info, err := r.prober.Probe(ctx, path)
		switch {
		case err != nil:
			item.Status = StatusFailed
			item.Err = err
		case info.Reserved():
			item.Status = StatusReserved
			item.Info = info
			item.Size = info.Size
		default:
			item.Status = StatusAccepted
			item.Info = info
			item.Size = info.Size
		}
		results = append(results, item)
	}
	return results, nil
}

// Accepted counts inspections that would take part in a run.
func Accepted(items []Inspection) int {
	n := 0
	for _, item := range items {
		if item.Status == StatusAccepted {
			n++
		}
	}
	return n
}
