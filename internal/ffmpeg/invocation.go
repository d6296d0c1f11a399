package ffmpeg

import (
	"strconv"
	"strings"
)

// Invocation describes one concat job handed to ffmpeg.
type Invocation struct {
	Inputs []string
	// Silence is the lavfi source appended after Inputs; empty means none.
	Silence     string
	FilterGraph string
	Maps        []string
	VideoCodec  string
	Output      string
	Overwrite   bool
}

// Args renders the ffmpeg argument list, excluding the binary.
func (inv Invocation) Args() []string {
	args := make([]string, 0, 12+2*len(inv.Inputs)+2*len(inv.Maps))
	args = append(args, "-hide_banner", "-nostdin")
	if inv.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	for _, input := range inv.Inputs {
		args = append(args, "-i", input)
	}
	if inv.Silence != "" {
		args = append(args, "-f", "lavfi", "-i", inv.Silence)
	}
	if inv.FilterGraph != "" {
		args = append(args, "-filter_complex", inv.FilterGraph)
	}
	for _, m := range inv.Maps {
		args = append(args, "-map", m)
	}
	if inv.VideoCodec != "" {
		args = append(args, "-c:v", inv.VideoCodec)
	}
	args = append(args, inv.Output)
	return args
}

// CommandLine renders binary plus Args as a shell-readable string for logs.
func (inv Invocation) CommandLine(binary string) string {
	parts := append([]string{binary}, inv.Args()...)
	for i, part := range parts {
		if part == "" || strings.ContainsAny(part, " \t\"'[];()") {
			parts[i] = strconv.Quote(part)
		}
	}
	return strings.Join(parts, " ")
}
