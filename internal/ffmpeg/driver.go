package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"memmet/internal/logging"
	"memmet/internal/services"
)

var commandContext = exec.CommandContext

const stderrTailLines = 20

// Output reports what the engine produced.
type Output struct {
	// Stderr holds the captured diagnostics when the caller asked for them.
	Stderr   string
	Duration time.Duration
}

// Driver spawns ffmpeg for an Invocation.
type Driver struct {
	binary string
	stdout io.Writer
	logger *slog.Logger
}

// NewDriver constructs a Driver for binary. A nil stdout discards the child's
// standard output.
func NewDriver(binary string, stdout io.Writer, logger *slog.Logger) *Driver {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if stdout == nil {
		stdout = io.Discard
	}
	return &Driver{
		binary: binary,
		stdout: stdout,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
	}
}

// Run executes inv and waits for the child to exit. Stderr is always
// captured; it is returned in Output only when capture is true.
func (d *Driver) Run(ctx context.Context, inv Invocation, capture bool) (Output, error) {
	if len(inv.Inputs) == 0 {
		return Output{}, services.Wrap(services.ErrConfiguration, "ffmpeg", "run", "no inputs", nil)
	}
	if strings.TrimSpace(inv.Output) == "" {
		return Output{}, services.Wrap(services.ErrConfiguration, "ffmpeg", "run", "empty output path", nil)
	}

	logger := logging.WithContext(ctx, d.logger)
	logger.Debug("starting engine", logging.String("command", inv.CommandLine(d.binary)))

	var stderr bytes.Buffer
	cmd := commandContext(ctx, d.binary, inv.Args()...)
	cmd.Stdout = d.stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	out := Output{Duration: time.Since(started)}
	if capture {
		out.Stderr = stderr.String()
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		message := "run"
		if errors.As(err, &exitErr) {
			message = fmt.Sprintf("exit status %d", exitErr.ExitCode())
		}
		if tail := Tail(stderr.String(), stderrTailLines); tail != "" {
			message += ": " + tail
		}
		return out, services.Wrap(services.ErrExternalTool, "ffmpeg", inv.Output, message, err)
	}

	logger.Info("engine finished",
		logging.String("output", inv.Output),
		logging.Duration("elapsed", out.Duration.Round(time.Millisecond)),
	)
	return out, nil
}

// Tail returns the last n non-empty lines of text.
func Tail(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			kept = append(kept, line)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "\n")
}
