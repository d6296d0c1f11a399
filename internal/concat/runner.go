package concat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"memmet/internal/config"
	"memmet/internal/defaults"
	"memmet/internal/ffmpeg"
	"memmet/internal/filtergraph"
	"memmet/internal/geometry"
	"memmet/internal/inputs"
	"memmet/internal/logging"
	"memmet/internal/probe"
	"memmet/internal/services"
)

// DefaultOutputName is the output file stem used when no output is given.
const DefaultOutputName = "output"

// TrackProber produces TrackInfo for one input file.
type TrackProber interface {
	Probe(ctx context.Context, path string) (probe.TrackInfo, error)
}

// Engine runs a rendered invocation.
type Engine interface {
	Run(ctx context.Context, inv ffmpeg.Invocation, capture bool) (ffmpeg.Output, error)
}

// Confirmer asks whether an existing output may be replaced.
type Confirmer interface {
	ConfirmOverwrite(ctx context.Context, path string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, path string) (bool, error)

// ConfirmOverwrite calls f.
func (f ConfirmFunc) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	return f(ctx, path)
}

// Request carries the call-site parameters. Nil fields fall back to the
// defaults record.
type Request struct {
	Output     string
	Inputs     []string
	Dimensions *geometry.Policy
	NoAudio    *bool
	Overwrite  *bool
	Debug      bool
}

// Result describes a finished or declined run.
type Result struct {
	Output     string
	Accepted   []probe.TrackInfo
	Reserved   []string
	Geometry   geometry.Size
	Graph      filtergraph.Graph
	Invocation ffmpeg.Invocation
	// Stderr is the engine diagnostics, set only for debug runs.
	Stderr   string
	Declined bool
}

// Runner executes concat jobs.
type Runner struct {
	settings  config.Settings
	record    defaults.Record
	prober    TrackProber
	engine    Engine
	confirmer Confirmer
	logger    *slog.Logger
}

// NewRunner wires a Runner. A nil settings uses config.Default(); a nil
// confirmer declines every overwrite.
func NewRunner(settings *config.Settings, record defaults.Record, prober TrackProber, engine Engine, confirmer Confirmer, logger *slog.Logger) *Runner {
	cfg := config.Default()
	if settings != nil {
		cfg = *settings
	}
	if confirmer == nil {
		confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	}
	return &Runner{
		settings:  cfg,
		record:    record,
		prober:    prober,
		engine:    engine,
		confirmer: confirmer,
		logger:    logging.NewComponentLogger(logger, "concat"),
	}
}

// Run performs one concat job.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	logger := logging.WithContext(ctx, r.logger)

	output, err := r.resolveOutput(req.Output)
	if err != nil {
		return Result{}, err
	}
	policy := r.resolvePolicy(req.Dimensions)
	noAudio := resolveBool(req.NoAudio, r.record.NoAudio)
	overwrite := resolveBool(req.Overwrite, r.record.Overwrite)

	files, err := inputs.Expand(req.Inputs)
	if err != nil {
		return Result{}, services.Wrap(services.ErrProbeFailure, "concat", "expand inputs", "", err)
	}

	result := Result{Output: output}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		info, err := r.prober.Probe(ctx, path)
		if err != nil {
			return Result{}, err
		}
		if info.Reserved() {
			logging.WithContext(services.WithInput(ctx, path), r.logger).Debug("skipping input with reserved color space")
			result.Reserved = append(result.Reserved, path)
			continue
		}
		result.Accepted = append(result.Accepted, info)
	}

	if len(result.Accepted) < 2 {
		return Result{}, services.Wrap(services.ErrInsufficientInputs, "concat", "collect inputs",
			fmt.Sprintf("need at least 2 videos, got %d", len(result.Accepted)), nil)
	}

	result.Geometry, err = geometry.Resolve(result.Accepted, policy)
	if err != nil {
		return Result{}, err
	}
	result.Graph, err = filtergraph.Build(result.Accepted, result.Geometry, noAudio)
	if err != nil {
		return Result{}, err
	}

	if !overwrite {
		exists, err := fileExists(output)
		if err != nil {
			return Result{}, services.Wrap(services.ErrConfiguration, "concat", "stat output", output, err)
		}
		if exists {
			ok, err := r.confirmer.ConfirmOverwrite(ctx, output)
			if err != nil {
				return Result{}, err
			}
			if !ok {
				logger.Info("overwrite declined", logging.String("output", output))
				result.Declined = true
				return result, nil
			}
			overwrite = true
		}
	}

	result.Invocation = r.invocation(result, output, overwrite)

	logger.Info("concatenating inputs",
		logging.Int("inputs", len(result.Accepted)),
		logging.Int("reserved", len(result.Reserved)),
		logging.String("geometry", result.Geometry.String()),
		logging.Bool("silence", result.Graph.Silence),
		logging.String("output", output),
	)

	out, err := r.engine.Run(ctx, result.Invocation, req.Debug)
	if err != nil {
		return Result{}, err
	}
	if req.Debug {
		result.Stderr = out.Stderr
	}
	return result, nil
}

func (r *Runner) invocation(result Result, output string, overwrite bool) ffmpeg.Invocation {
	paths := make([]string, 0, len(result.Accepted))
	for _, info := range result.Accepted {
		paths = append(paths, info.Path)
	}
	inv := ffmpeg.Invocation{
		Inputs:      paths,
		FilterGraph: result.Graph.Expression,
		Maps:        result.Graph.Maps,
		VideoCodec:  r.settings.FFmpeg.VideoCodec,
		Output:      output,
		Overwrite:   overwrite,
	}
	if result.Graph.Silence {
		inv.Silence = r.settings.FFmpeg.SilenceSource
	}
	return inv
}

// resolveOutput applies call-site > defaults > fallback to the output path and
// validates an explicit extension.
func (r *Runner) resolveOutput(explicit string) (string, error) {
	fileType := defaults.DefaultFileType
	if r.record.FileType != nil {
		fileType = *r.record.FileType
	}

	explicit = strings.TrimSpace(explicit)
	if explicit == "" {
		dir := "."
		if r.record.OutDir != nil && strings.TrimSpace(*r.record.OutDir) != "" {
			dir = *r.record.OutDir
		}
		return filepath.Join(dir, DefaultOutputName+fileType.Extension()), nil
	}

	ext := filepath.Ext(explicit)
	if ext == "" {
		return explicit + fileType.Extension(), nil
	}
	if _, err := defaults.ParseFileType(ext); err != nil {
		return "", services.Wrap(services.ErrInvalidExtension, "concat", "output",
			fmt.Sprintf("%s: extension %q is not one of mp4, mov, mkv", explicit, ext), nil)
	}
	return explicit, nil
}

func (r *Runner) resolvePolicy(explicit *geometry.Policy) geometry.Policy {
	if explicit != nil {
		return *explicit
	}
	if r.record.Dimensions != nil {
		return *r.record.Dimensions
	}
	return geometry.Largest()
}

func resolveBool(explicit, stored *bool) bool {
	if explicit != nil {
		return *explicit
	}
	if stored != nil {
		return *stored
	}
	return false
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
