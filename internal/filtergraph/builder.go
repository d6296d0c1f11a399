package filtergraph

import (
	"fmt"
	"strings"

	"memmet/internal/geometry"
	"memmet/internal/probe"
	"memmet/internal/services"
)

const (
	// VideoOutLabel is the concat video output.
	VideoOutLabel = "[v]"
	// AudioOutLabel is the concat audio output.
	AudioOutLabel = "[a]"
)

// Graph is the result of Build.
type Graph struct {
	// Expression is the -filter_complex argument.
	Expression string
	// Maps lists the -map targets in order.
	Maps []string
	// Silence reports whether a silence input must follow the real inputs.
	Silence bool
	// SilenceIndex is the engine input index of the silence input when Silence is set.
	SilenceIndex int
}

// InputLabel names the scaled and padded video of input i. The "in" prefix
// keeps labels apart from ffmpeg's numeric stream specifiers.
func InputLabel(i int) string {
	return fmt.Sprintf("[in%d]", i)
}

// Build assembles the filter graph for accepted scaled to canonical.
func Build(accepted []probe.TrackInfo, canonical geometry.Size, noAudio bool) (Graph, error) {
	n := len(accepted)
	if n < 2 {
		return Graph{}, services.Wrap(services.ErrInsufficientInputs, "filtergraph", "build", fmt.Sprintf("need at least 2 videos, got %d", n), nil)
	}
	if canonical.Width <= 0 || canonical.Height <= 0 {
		return Graph{}, services.Wrap(services.ErrConfiguration, "filtergraph", "build", fmt.Sprintf("invalid geometry %s", canonical), nil)
	}

	graph := Graph{}
	if !noAudio {
		for _, info := range accepted {
			if !info.HasAudio() {
				graph.Silence = true
				graph.SilenceIndex = n
				break
			}
		}
	}

	clauses := make([]string, 0, n+1)
	var concat strings.Builder
	for i, info := range accepted {
		clauses = append(clauses, scaleClause(i, info.VideoIndex, canonical))
		concat.WriteString(InputLabel(i))
		if noAudio {
			continue
		}
		if info.HasAudio() {
			fmt.Fprintf(&concat, "[%d:%d]", i, *info.AudioIndex)
		} else {
			fmt.Fprintf(&concat, "[%d:a]", graph.SilenceIndex)
		}
	}

	if noAudio {
		fmt.Fprintf(&concat, "concat=n=%d:v=1%s", n, VideoOutLabel)
		graph.Maps = []string{VideoOutLabel}
	} else {
		fmt.Fprintf(&concat, "concat=n=%d:v=1:a=1%s%s", n, VideoOutLabel, AudioOutLabel)
		graph.Maps = []string{VideoOutLabel, AudioOutLabel}
	}
	clauses = append(clauses, concat.String())

	graph.Expression = strings.Join(clauses, ";")
	return graph, nil
}

func scaleClause(i, videoIndex int, size geometry.Size) string {
	w, h := size.Width, size.Height
	return fmt.Sprintf(
		"[%d:%d]scale=%d:%d:force_original_aspect_ratio=decrease,setdar=ratio=%d/%d,setsar=sar=1/1,pad=%d:%d:(ow-iw)/2:(oh-ih)/2%s",
		i, videoIndex, w, h, w, h, w, h, InputLabel(i),
	)
}
