package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"memmet/internal/config"
	"memmet/internal/testsupport"
)

const ffprobeStub = `#!/bin/sh
for last; do :; done
case "$last" in
*silent*)
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","width":640,"height":480,"color_space":"bt709"}],"format":{"size":"16"}}
JSON
;;
*reserved*)
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","color_space":"reserved"},{"index":1,"codec_type":"audio"}],"format":{}}
JSON
;;
*broken*)
echo "invalid data found when processing input" >&2
exit 1
;;
*)
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","width":1280,"height":720,"color_space":"bt709"},{"index":1,"codec_type":"audio"}],"format":{"duration":"12.5","size":"16"}}
JSON
;;
esac
`

const ffmpegStubTemplate = `#!/bin/sh
printf '%%s\n' "$@" > '%s'
echo "frame=  42 fps=0.0 q=-1.0 size=N/A" >&2
exit 0
`

type cliTestEnv struct {
	configDir string
	clipsDir  string
	argsFile  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		configDir: filepath.Join(base, "config"),
		clipsDir:  filepath.Join(base, "clips"),
		argsFile:  filepath.Join(base, "ffmpeg-args.txt"),
	}
	t.Setenv("HOME", filepath.Join(base, "home"))

	binDir := filepath.Join(base, "bin")
	ffprobe := testsupport.StubBinary(t, binDir, "ffprobe")
	if err := os.WriteFile(ffprobe, []byte(ffprobeStub), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}
	ffmpeg := testsupport.StubBinary(t, binDir, "ffmpeg")
	if err := os.WriteFile(ffmpeg, []byte(fmt.Sprintf(ffmpegStubTemplate, env.argsFile)), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}

	settings := fmt.Sprintf("[ffmpeg]\nffmpeg_binary = %q\nffprobe_binary = %q\n", ffmpeg, ffprobe)
	if err := os.MkdirAll(env.configDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(config.PathIn(env.configDir), []byte(settings), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return env
}

func (e *cliTestEnv) clips(t *testing.T, names ...string) []string {
	t.Helper()
	return testsupport.WriteClips(t, e.clipsDir, names...)
}

func (e *cliTestEnv) ffmpegArgs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.argsFile)
	if err != nil {
		t.Fatalf("read ffmpeg args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", env.configDir}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

func inputFlags(paths ...string) []string {
	args := make([]string, 0, 2*len(paths))
	for _, p := range paths {
		args = append(args, "-i", p)
	}
	return args
}
