package geometry

import (
	"fmt"

	"memmet/internal/probe"
	"memmet/internal/services"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Resolve returns the canonical geometry for accepted under policy.
func Resolve(accepted []probe.TrackInfo, policy Policy) (Size, error) {
	switch policy.Kind {
	case KindExplicit:
		return Size{Width: policy.Width, Height: policy.Height}, nil
	case KindSmallest:
		return Size{}, services.Wrap(services.ErrUnsupportedPolicy, "geometry", "resolve", `the "smallest" dimensions option is currently unsupported`, nil)
	case KindLargest:
		if len(accepted) == 0 {
			return Size{}, services.Wrap(services.ErrInsufficientInputs, "geometry", "resolve", "no inputs to measure", nil)
		}
		best := accepted[0]
		for _, info := range accepted[1:] {
			if info.Area() > best.Area() {
				best = info
			}
		}
		return Size{Width: best.Width, Height: best.Height}, nil
	default:
		return Size{}, services.Wrap(services.ErrUnsupportedPolicy, "geometry", "resolve", fmt.Sprintf("unknown policy kind %d", policy.Kind), nil)
	}
}
