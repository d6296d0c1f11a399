package geometry_test

import (
	"errors"
	"testing"

	"memmet/internal/geometry"
	"memmet/internal/probe"
	"memmet/internal/services"
)

func tracks(sizes ...[2]int) []probe.TrackInfo {
	out := make([]probe.TrackInfo, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, probe.TrackInfo{Width: s[0], Height: s[1]})
	}
	return out
}

func TestResolveLargest(t *testing.T) {
	got, err := geometry.Resolve(tracks([2]int{640, 480}, [2]int{1920, 1080}, [2]int{1280, 720}), geometry.Largest())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != (geometry.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("expected 1920x1080, got %s", got)
	}
}

func TestResolveLargestTieKeepsFirst(t *testing.T) {
	inputs := tracks([2]int{1080, 1920}, [2]int{1920, 1080}, [2]int{100, 100})
	got, err := geometry.Resolve(inputs, geometry.Largest())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != (geometry.Size{Width: 1080, Height: 1920}) {
		t.Fatalf("expected first of equal areas, got %s", got)
	}
}

func TestResolveExplicitIgnoresInputs(t *testing.T) {
	got, err := geometry.Resolve(tracks([2]int{3840, 2160}), geometry.Explicit(320, 240))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.String() != "320x240" {
		t.Fatalf("expected explicit 320x240, got %s", got)
	}
	if _, err := geometry.Resolve(nil, geometry.Explicit(320, 240)); err != nil {
		t.Fatalf("explicit policy must not need inputs: %v", err)
	}
}

func TestResolveSmallestAlwaysFails(t *testing.T) {
	for _, inputs := range [][]probe.TrackInfo{
		tracks([2]int{640, 480}),
		tracks([2]int{640, 480}, [2]int{1920, 1080}),
		tracks([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}),
	} {
		got, err := geometry.Resolve(inputs, geometry.Smallest())
		if !errors.Is(err, services.ErrUnsupportedPolicy) {
			t.Fatalf("expected unsupported policy, got %v", err)
		}
		if got != (geometry.Size{}) {
			t.Fatalf("expected no geometry, got %s", got)
		}
	}
}

func TestResolveLargestEmpty(t *testing.T) {
	_, err := geometry.Resolve(nil, geometry.Largest())
	if !errors.Is(err, services.ErrInsufficientInputs) {
		t.Fatalf("expected insufficient inputs, got %v", err)
	}
}
