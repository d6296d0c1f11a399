package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memmet/internal/concat"
	"memmet/internal/ffmpeg"
	"memmet/internal/geometry"
	"memmet/internal/logging"
	"memmet/internal/preflight"
	"memmet/internal/probe"
	"memmet/internal/runlock"
	"memmet/internal/services"
)

var errNoInputs = services.Wrap(services.ErrConfiguration, "cli", "inputs", "at least one --input is required", nil)

type concatOptions struct {
	inputs     []string
	dimensions geometry.Policy
	noAudio    bool
	overwrite  bool
	debug      bool
}

func (o *concatOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&o.inputs, "input", "i", nil, "Input file or directory to concatenate (repeatable)")
	flags.VarP(&o.dimensions, "dimensions", "d", "Output dimensions: largest, smallest, or WIDTH:HEIGHT")
	flags.BoolVarP(&o.noAudio, "no-audio", "n", false, "Remove all audio from the output file")
	flags.BoolVarP(&o.overwrite, "overwrite", "y", false, "Overwrite the output file if it already exists")
	flags.BoolVar(&o.debug, "debug", false, "Print ffmpeg output after it finishes")
}

func (o *concatOptions) request(cmd *cobra.Command, args []string) concat.Request {
	flags := cmd.Flags()
	req := concat.Request{
		Inputs:    o.inputs,
		NoAudio:   changedBool(flags, "no-audio", o.noAudio),
		Overwrite: changedBool(flags, "overwrite", o.overwrite),
		Debug:     o.debug,
	}
	if len(args) > 0 {
		req.Output = args[0]
	}
	if flags.Changed("dimensions") {
		policy := o.dimensions
		req.Dimensions = &policy
	}
	return req
}

func runConcat(cmd *cobra.Command, ctx *commandContext, opts *concatOptions, args []string) error {
	settings, err := ctx.ensureSettings()
	if err != nil {
		return err
	}
	logger, err := ctx.commandLogger(cmd)
	if err != nil {
		return err
	}
	if err := preflight.RequireBinaries(settings); err != nil {
		return err
	}

	dir, err := ctx.configDir()
	if err != nil {
		return err
	}
	lock, err := runlock.Acquire(dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	store, err := ctx.ensureStore(cmd)
	if err != nil {
		return err
	}

	runCtx := services.WithRunID(cmd.Context(), ctx.runID)
	prober := probe.NewProber(logger, probe.WithBinary(settings.FFmpeg.FFprobeBinary))
	driver := ffmpeg.NewDriver(settings.FFmpeg.FFmpegBinary, cmd.OutOrStdout(), logger)
	confirmer := newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	runner := concat.NewRunner(settings, store.Record(), prober, driver, confirmer, logger)

	result, err := runner.Run(runCtx, opts.request(cmd, args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Declined {
		fmt.Fprintf(out, "Kept existing %s; nothing written\n", result.Output)
		return nil
	}
	if opts.debug && result.Stderr != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Stderr)
	}
	fmt.Fprintf(out, "Wrote %s (%d inputs at %s)\n", result.Output, len(result.Accepted), result.Geometry)
	if n := len(result.Reserved); n > 0 {
		fmt.Fprintf(out, "Skipped %d input(s) with reserved color space\n", n)
	}
	return nil
}
