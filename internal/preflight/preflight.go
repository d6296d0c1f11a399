package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"memmet/internal/config"
	"memmet/internal/services"
)

var commandContext = exec.CommandContext

const versionTimeout = 5 * time.Second

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given settings. outputDir is
// skipped when empty.
func RunAll(ctx context.Context, cfg *config.Settings, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary(ctx, "FFmpeg", cfg.FFmpeg.FFmpegBinary),
		CheckBinary(ctx, "FFprobe", cfg.FFmpeg.FFprobeBinary),
	}
	if strings.TrimSpace(outputDir) != "" {
		results = append(results, CheckDirectoryAccess("Output directory", outputDir))
	}
	return results
}

// RequireBinaries fails when ffmpeg or ffprobe cannot be located.
func RequireBinaries(cfg *config.Settings) error {
	if cfg == nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "binaries", "settings not loaded", nil)
	}
	var missing []string
	for _, binary := range []string{cfg.FFmpeg.FFmpegBinary, cfg.FFmpeg.FFprobeBinary} {
		if _, err := exec.LookPath(strings.TrimSpace(binary)); err != nil {
			missing = append(missing, binary)
		}
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrExternalTool, "preflight", "binaries",
			fmt.Sprintf("not installed or not on PATH: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}

// CheckBinary verifies that binary resolves on PATH and reports its version
// line when the tool answers -version.
func CheckBinary(ctx context.Context, name, binary string) Result {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return Result{Name: name, Detail: "command not configured"}
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", binary)}
	}
	if version := Version(ctx, resolved); version != "" {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", resolved, version)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// Version runs "binary -version" and returns the first output line, or an
// empty string when the tool does not answer in time.
func Version(ctx context.Context, binary string) string {
	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := commandContext(checkCtx, binary, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
