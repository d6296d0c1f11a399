package main

import (
	"errors"
	"path/filepath"
	"testing"

	"memmet/internal/services"
)

func TestProbeCommandListsInputs(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "broken.mp4", "reserved.mov", "notes.txt")

	out, _, err := runCLI(t, env, "", append([]string{"probe"}, inputFlags(env.clipsDir)...)...)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, filepath.Join(env.clipsDir, "a.mp4"))
	requireContains(t, out, "Accepted")
	requireContains(t, out, "Failed")
	requireContains(t, out, "Reserved")
	requireContains(t, out, "1280x720")
	requireContains(t, out, "16 B")
	requireContains(t, out, "12.5s")
	requireContains(t, out, "0 h264")
	requireContains(t, out, "Skipped "+filepath.Join(env.clipsDir, "notes.txt")+": not an mp4/mkv/mov file")
	requireContains(t, out, "broken.mp4: probe failure")
	requireContains(t, out, "1 of 3 inputs accepted")
}

func TestProbeCommandRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env, "", "probe"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := t.TempDir()
	if _, _, err := runCLI(t, env, "", "config", "-o", outDir); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out, _, err := runCLI(t, env, "", "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, outDir+" (read/write ok)")

	if _, _, err := runCLI(t, env, "", "config", "-o", filepath.Join(outDir, "missing")); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err = runCLI(t, env, "", "check")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected failing check, got %v", err)
	}
	requireContains(t, out, "does not exist")
}
