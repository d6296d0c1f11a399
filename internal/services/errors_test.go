package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"memmet/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrProbeFailure, "prober", "inspect", "clip.mp4", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProbeFailure) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"prober", "inspect", "clip.mp4"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrInsufficientInputs, "", "", "", nil)
	if !errors.Is(err, services.ErrInsufficientInputs) {
		t.Fatalf("expected marker, got %v", err)
	}
	if !strings.HasSuffix(err.Error(), ": failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestWrapDefaultsToExternalTool(t *testing.T) {
	err := services.Wrap(nil, "engine", "run", "exit 1", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	if code := services.ExitCode(nil); code != 0 {
		t.Fatalf("expected 0 for nil, got %d", code)
	}
	if code := services.ExitCode(fmt.Errorf("run: %w", context.Canceled)); code != 130 {
		t.Fatalf("expected 130 for cancellation, got %d", code)
	}
	if code := services.ExitCode(services.Wrap(services.ErrConfigParse, "defaults", "open", "", nil)); code != 1 {
		t.Fatalf("expected 1 for policy error, got %d", code)
	}
}
