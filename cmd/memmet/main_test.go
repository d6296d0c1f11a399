package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"memmet/internal/services"
	"memmet/internal/testsupport"
)

func TestConcatRunsFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t)
	clips := env.clips(t, "a.mp4", "reserved.mov", "silent.mkv")
	out := filepath.Join(t.TempDir(), "joined.mp4")

	stdout, _, err := runCLI(t, env, "", append([]string{out}, inputFlags(env.clipsDir)...)...)
	if err != nil {
		t.Fatalf("concat run: %v", err)
	}
	requireContains(t, stdout, "Wrote "+out+" (2 inputs at 1280x720)")
	requireContains(t, stdout, "Skipped 1 input(s) with reserved color space")

	args := env.ffmpegArgs(t)
	if args[len(args)-1] != out {
		t.Fatalf("expected output last, got %v", args)
	}
	if !slices.Contains(args, "-n") || slices.Contains(args, "-y") {
		t.Fatalf("expected no-overwrite flag: %v", args)
	}
	if slices.Contains(args, clips[1]) {
		t.Fatalf("reserved input reached ffmpeg: %v", args)
	}
	joined := strings.Join(args, " ")
	requireContains(t, joined, "-i "+clips[0]+" -i "+clips[2]+" -f lavfi -i anullsrc=channel_layout=stereo")
	requireContains(t, joined, "[in0][0:1][in1][2:a]concat=n=2:v=1:a=1[v][a]")
	requireContains(t, joined, "-map [v] -map [a] -c:v libx265")
}

func TestConcatDebugPrintsFFmpegStderr(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "b.mp4")
	out := filepath.Join(t.TempDir(), "joined.mp4")

	_, stderr, err := runCLI(t, env, "", append([]string{out, "--debug"}, inputFlags(env.clipsDir)...)...)
	if err != nil {
		t.Fatalf("concat run: %v", err)
	}
	requireContains(t, stderr, "frame=  42")
}

func TestConcatDeclinedOverwriteSucceeds(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "b.mp4")
	out := filepath.Join(t.TempDir(), "joined.mp4")
	testsupport.WriteFile(t, out, 4)

	stdout, stderr, err := runCLI(t, env, "n\n", append([]string{out}, inputFlags(env.clipsDir)...)...)
	if err != nil {
		t.Fatalf("declined run should succeed, got %v", err)
	}
	requireContains(t, stderr, "Overwrite? [y/N]")
	requireContains(t, stdout, "Kept existing")
	if _, err := os.Stat(env.argsFile); !os.IsNotExist(err) {
		t.Fatalf("ffmpeg must not run after declining, stat err=%v", err)
	}
}

func TestConcatConfirmedOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "b.mp4")
	out := filepath.Join(t.TempDir(), "joined.mp4")
	testsupport.WriteFile(t, out, 4)

	_, stderr, err := runCLI(t, env, "maybe\ny\n", append([]string{out}, inputFlags(env.clipsDir)...)...)
	if err != nil {
		t.Fatalf("concat run: %v", err)
	}
	requireContains(t, stderr, "Please answer y or n.")
	if args := env.ffmpegArgs(t); !slices.Contains(args, "-y") {
		t.Fatalf("expected -y after confirmation: %v", args)
	}
}

func TestConcatErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	one := env.clips(t, "a.mp4")

	_, _, err := runCLI(t, env, "", append([]string{filepath.Join(t.TempDir(), "o.mp4")}, inputFlags(one...)...)...)
	if !errors.Is(err, services.ErrInsufficientInputs) {
		t.Fatalf("expected insufficient inputs, got %v", err)
	}

	_, _, err = runCLI(t, env, "", append([]string{"out.avi"}, inputFlags(one...)...)...)
	if !errors.Is(err, services.ErrInvalidExtension) {
		t.Fatalf("expected invalid extension, got %v", err)
	}

	_, _, err = runCLI(t, env, "", "out.mp4")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected missing input error, got %v", err)
	}

	_, _, err = runCLI(t, env, "", "--log-format", "xml", "check")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected log format error, got %v", err)
	}

	if _, _, err := runCLI(t, env, "", "-d", "wide", "-i", one[0]); err == nil {
		t.Fatal("expected invalid dimensions to be rejected")
	}
}

func TestConcatUsesStoredDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "silent.mkv")
	outDir := t.TempDir()

	if _, _, err := runCLI(t, env, "", "config", "--out_dir", outDir, "-t", "mkv", "-n", "true", "-d", "800x600"); err != nil {
		t.Fatalf("config set: %v", err)
	}

	stdout, _, err := runCLI(t, env, "", inputFlags(env.clipsDir)...)
	if err != nil {
		t.Fatalf("concat run: %v", err)
	}
	want := filepath.Join(outDir, "output.mkv")
	requireContains(t, stdout, "Wrote "+want+" (2 inputs at 800x600)")

	joined := strings.Join(env.ffmpegArgs(t), " ")
	if strings.Contains(joined, "lavfi") || strings.Contains(joined, "[a]") {
		t.Fatalf("expected stored no_audio to drop audio: %s", joined)
	}
	requireContains(t, joined, "concat=n=2:v=1[v]")
	requireContains(t, joined, "scale=800:600")
}

func TestConcatCallSiteOverridesDefaults(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "silent.mkv")
	out := filepath.Join(t.TempDir(), "joined.mov")

	if _, _, err := runCLI(t, env, "", "config", "-n", "true"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, _, err := runCLI(t, env, "", append([]string{out, "--no_audio=false"}, inputFlags(env.clipsDir)...)...); err != nil {
		t.Fatalf("concat run: %v", err)
	}
	requireContains(t, strings.Join(env.ffmpegArgs(t), " "), "concat=n=2:v=1:a=1[v][a]")
}

func TestConcatFailsWithoutBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clips(t, "a.mp4", "b.mp4")
	settings := "[ffmpeg]\nffmpeg_binary = \"/nonexistent/ffmpeg\"\n"
	if err := os.WriteFile(filepath.Join(env.configDir, "settings.toml"), []byte(settings), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	_, _, err := runCLI(t, env, "", append([]string{"o.mp4"}, inputFlags(env.clipsDir)...)...)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRootWithoutArgumentsPrintsHelp(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := runCLI(t, env, "")
	if err != nil {
		t.Fatalf("root help: %v", err)
	}
	requireContains(t, stdout, "memmet [OUTPUT]")
}
