package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memmet/internal/preflight"
	"memmet/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe, and the default output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}

			outputDir := "."
			if record := store.Record(); record.OutDir != nil {
				outputDir = *record.OutDir
			}

			results := preflight.RunAll(cmd.Context(), settings, outputDir)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Dependencies", colorize)
			lines = append(lines, preflightLines(results, colorize)...)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrExternalTool, "check", "", fmt.Sprintf("%d of %d checks failed", len(failed), len(results)), nil)
			}
			return nil
		},
	}
}
