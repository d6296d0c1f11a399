package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"memmet/internal/config"
)

// SettingsOption allows callers to customize the generated test settings.
type SettingsOption func(*settingsBuilder)

type settingsBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Settings
}

// NewSettings produces default settings rooted in a fresh temp directory and
// applies any provided options.
func NewSettings(t testing.TB, opts ...SettingsOption) *config.Settings {
	t.Helper()

	cfgVal := config.Default()
	builder := &settingsBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithVideoCodec overrides the encoder on the test settings.
func WithVideoCodec(codec string) SettingsOption {
	return func(b *settingsBuilder) {
		b.cfg.FFmpeg.VideoCodec = codec
	}
}

// WithStubbedBinaries writes stub executables for ffmpeg and ffprobe into a
// temp bin directory and points the settings at them.
func WithStubbedBinaries() SettingsOption {
	return func(b *settingsBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		b.cfg.FFmpeg.FFmpegBinary = StubBinary(b.t, binDir, "ffmpeg")
		b.cfg.FFmpeg.FFprobeBinary = StubBinary(b.t, binDir, "ffprobe")
	}
}

// WithMissingBinaries points the settings at executables that do not exist.
func WithMissingBinaries() SettingsOption {
	return func(b *settingsBuilder) {
		b.cfg.FFmpeg.FFmpegBinary = filepath.Join(b.baseDir, "absent", "ffmpeg")
		b.cfg.FFmpeg.FFprobeBinary = filepath.Join(b.baseDir, "absent", "ffprobe")
	}
}

// StubBinary writes an executable shell script named name into dir that
// exits successfully, returning its path.
func StubBinary(t testing.TB, dir, name string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
