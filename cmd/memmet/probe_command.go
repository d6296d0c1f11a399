package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"memmet/internal/concat"
	"memmet/internal/defaults"
	"memmet/internal/inputs"
	"memmet/internal/probe"
	"memmet/internal/services"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var paths []string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show the track info memmet would use for each input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(paths) == 0 {
				return errNoInputs
			}
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			logger, err := ctx.commandLogger(cmd)
			if err != nil {
				return err
			}

			discovered, err := inputs.ExpandAll(paths)
			if err != nil {
				return services.Wrap(services.ErrProbeFailure, "probe", "expand inputs", "", err)
			}

			prober := probe.NewProber(logger, probe.WithBinary(settings.FFmpeg.FFprobeBinary))
			runner := concat.NewRunner(settings, defaults.Record{}, prober, nil, nil, logger)
			items, err := runner.Inspect(services.WithRunID(cmd.Context(), ctx.runID), paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range discovered {
				if !inputs.Allowed(path) {
					fmt.Fprintf(out, "Skipped %s: not an %s file\n", path, strings.Join(inputs.Extensions(), "/"))
				}
			}
			if len(items) == 0 {
				fmt.Fprintf(out, "No %s files found\n", strings.Join(inputs.Extensions(), ", "))
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "Size", "Duration", "Status", "Video", "Audio", "Geometry", "Color Space"},
				inspectionRows(items),
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
			))
			for _, item := range items {
				if item.Err != nil {
					fmt.Fprintf(out, "%s: %v\n", filepath.Base(item.Path), item.Err)
				}
			}
			fmt.Fprintf(out, "%d of %d inputs accepted\n", concat.Accepted(items), len(items))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paths, "input", "i", nil, "Input file or directory to inspect (repeatable)")
	return cmd
}

func inspectionRows(items []concat.Inspection) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		row := []string{
			strconv.Itoa(i + 1),
			item.Path,
			orDash(item.Size > 0, humanize.Bytes(uint64(max(item.Size, 0)))),
			orDash(item.Info.Duration > 0, item.Info.Duration.Round(100*time.Millisecond).String()),
			titleLabel(string(item.Status)),
		}
		if item.Status == concat.StatusFailed {
			rows = append(rows, append(row, "-", "-", "-", "-"))
			continue
		}
		video := strconv.Itoa(item.Info.VideoIndex)
		if item.Info.VideoCodec != "" {
			video += " " + item.Info.VideoCodec
		}
		audio := "none"
		if item.Info.HasAudio() {
			audio = strconv.Itoa(*item.Info.AudioIndex)
		}
		rows = append(rows, append(row,
			video,
			audio,
			orDash(item.Info.Area() > 0, fmt.Sprintf("%dx%d", item.Info.Width, item.Info.Height)),
			orDash(item.Info.ColorSpace != "", item.Info.ColorSpace),
		))
	}
	return rows
}

func orDash(ok bool, value string) string {
	if !ok {
		return "-"
	}
	return value
}
