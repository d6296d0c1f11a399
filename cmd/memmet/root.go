package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configDirFlag string
	var logLevelFlag string
	var logFormatFlag string

	ctx := newCommandContext(&configDirFlag, &logLevelFlag, &logFormatFlag)
	opts := &concatOptions{}

	rootCmd := &cobra.Command{
		Use:           "memmet [OUTPUT]",
		Short:         "Concatenate videos with ffmpeg",
		Long:          "memmet probes each input, scales them to one canonical size, fills missing audio with silence, and concatenates them with ffmpeg.",
		Version:       "1.0",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.commandLogger(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.inputs) == 0 {
				if len(args) == 0 {
					return cmd.Help()
				}
				return errNoInputs
			}
			return runConcat(cmd, ctx, opts, args)
		},
	}

	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory holding the defaults record and settings.toml")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (console, json)")

	opts.register(rootCmd)

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
