package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"memmet/internal/config"
	"memmet/internal/defaults"
	"memmet/internal/geometry"
	"memmet/internal/runlock"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var dimensions geometry.Policy
	var noAudio optionalBool
	var overwrite optionalBool
	var fileType defaults.FileType

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Set the default values used by concat runs",
		Long:  "Set the default values used by concat runs. Only the flags you pass are changed; everything else keeps its stored value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			update := defaults.Record{
				NoAudio:   noAudio.value,
				Overwrite: overwrite.value,
			}
			if flags.Changed("output-directory") {
				expanded, err := config.ExpandPath(strings.TrimSpace(outDir))
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				update.OutDir = &expanded
			}
			if flags.Changed("dimensions") {
				policy := dimensions
				update.Dimensions = &policy
			}
			if flags.Changed("file-type") {
				ft := fileType
				update.FileType = &ft
			}

			out := cmd.OutOrStdout()
			if update.Empty() {
				fmt.Fprintln(out, "No defaults changed; run `memmet config show` to see the stored values")
				return nil
			}

			dir, err := ctx.configDir()
			if err != nil {
				return err
			}
			lock, err := runlock.Acquire(dir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			store, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Set(update); err != nil {
				return err
			}
			fmt.Fprintln(out, "Config successfully updated")
			if update.Dimensions != nil && update.Dimensions.Kind == geometry.KindSmallest {
				fmt.Fprintln(out, "Note: \"smallest\" is stored but runs using it will fail until it is supported")
			}
			return nil
		},
	}

	flags := configCmd.Flags()
	flags.StringVarP(&outDir, "output-directory", "o", "", "Default directory for the output file")
	flags.VarP(&dimensions, "dimensions", "d", "Default dimensions: largest, smallest, or WIDTH:HEIGHT")
	flags.VarP(&noAudio, "no-audio", "n", "Remove audio by default")
	flags.VarP(&overwrite, "overwrite", "y", "Overwrite existing outputs by default")
	flags.VarP(&fileType, "file-type", "t", "Default output container")

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand(ctx))
	configCmd.AddCommand(newConfigResetCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Setting", "Value", "Source"},
				recordRows(store.Record()),
				nil,
			))
			return nil
		},
	}
}

func recordRows(record defaults.Record) [][]string {
	row := func(key string, value *string, fallback string) []string {
		if value != nil {
			return []string{titleLabel(key), *value, "stored"}
		}
		return []string{titleLabel(key), fallback, "default"}
	}
	str := func(v fmt.Stringer) *string {
		s := v.String()
		return &s
	}

	rows := make([][]string, 0, 5)
	rows = append(rows, row("out_dir", record.OutDir, "."))
	if record.Dimensions != nil {
		rows = append(rows, row("dimensions", str(record.Dimensions), ""))
	} else {
		rows = append(rows, row("dimensions", nil, geometry.Largest().String()))
	}
	if record.NoAudio != nil {
		v := yesNo(*record.NoAudio)
		rows = append(rows, row("no_audio", &v, ""))
	} else {
		rows = append(rows, row("no_audio", nil, yesNo(false)))
	}
	if record.Overwrite != nil {
		v := yesNo(*record.Overwrite)
		rows = append(rows, row("overwrite", &v, ""))
	} else {
		rows = append(rows, row("overwrite", nil, yesNo(false)))
	}
	if record.FileType != nil {
		rows = append(rows, row("file_type", str(record.FileType), ""))
	} else {
		rows = append(rows, row("file_type", nil, defaults.DefaultFileType.String()))
	}
	return rows
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file locations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.configDir()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Defaults: %s\n", defaultsPath(dir))
			fmt.Fprintf(out, "Settings: %s\n", config.PathIn(dir))
			return nil
		},
	}
}

func defaultsPath(dir string) string {
	return filepath.Join(dir, defaults.FileName)
}

func newConfigResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every stored default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ctx.configDir()
			if err != nil {
				return err
			}
			lock, err := runlock.Acquire(dir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			store, err := ctx.ensureStore(cmd)
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared defaults in %s\n", store.Path())
			return nil
		},
	}
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample settings.toml",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				dir, err := ctx.configDir()
				if err != nil {
					return fmt.Errorf("determine config directory: %w", err)
				}
				target = config.PathIn(dir)
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve settings path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("settings file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check settings path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample settings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample settings to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing settings if present")
	return cmd
}
