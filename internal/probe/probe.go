package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"memmet/internal/logging"
	"memmet/internal/media/ffprobe"
	"memmet/internal/services"
)

// ReservedColorSpace is the ffprobe color space value that excludes an input
// from concatenation.
const ReservedColorSpace = "reserved"

// TrackInfo holds the facts gathered for one accepted input.
type TrackInfo struct {
	Path       string
	VideoIndex int
	AudioIndex *int
	ColorSpace string
	Width      int
	Height     int
	// VideoCodec is the codec name of the selected video stream, if reported.
	VideoCodec string
	Duration   time.Duration
	Size       int64
}

// HasAudio reports whether the input carries a usable audio track.
func (t TrackInfo) HasAudio() bool {
	return t.AudioIndex != nil
}

// Reserved reports whether the input uses the reserved color space.
func (t TrackInfo) Reserved() bool {
	return t.ColorSpace == ReservedColorSpace
}

// Area returns width*height.
func (t TrackInfo) Area() int {
	return t.Width * t.Height
}

// InspectFunc runs the external probe for a single path.
type InspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Prober extracts TrackInfo values using ffprobe.
type Prober struct {
	binary  string
	inspect InspectFunc
	logger  *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithBinary overrides the ffprobe executable.
func WithBinary(binary string) Option {
	return func(p *Prober) {
		if strings.TrimSpace(binary) != "" {
			p.binary = binary
		}
	}
}

// WithInspectFunc replaces the ffprobe invocation, mainly for tests.
func WithInspectFunc(fn InspectFunc) Option {
	return func(p *Prober) {
		if fn != nil {
			p.inspect = fn
		}
	}
}

// NewProber constructs a Prober backed by ffprobe.Inspect.
func NewProber(logger *slog.Logger, opts ...Option) *Prober {
	p := &Prober{
		binary:  "ffprobe",
		inspect: ffprobe.Inspect,
		logger:  logging.NewComponentLogger(logger, "prober"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe inspects path and returns its TrackInfo.
func (p *Prober) Probe(ctx context.Context, path string) (TrackInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return TrackInfo{}, services.Wrap(services.ErrProbeFailure, "prober", "stat", path, err)
	}
	result, err := p.inspect(ctx, p.binary, path)
	if err != nil {
		return TrackInfo{}, services.Wrap(services.ErrProbeFailure, "prober", "inspect", path, err)
	}
	info, err := FromResult(path, result)
	if err != nil {
		return TrackInfo{}, err
	}
	logging.WithContext(services.WithInput(ctx, path), p.logger).Debug("probed input",
		logging.Int("video_index", info.VideoIndex),
		logging.Bool("audio", info.HasAudio()),
		logging.String("color_space", info.ColorSpace),
		logging.Int("width", info.Width),
		logging.Int("height", info.Height),
	)
	return info, nil
}

// FromResult selects track indices and geometry from an ffprobe result.
//
// The first video and first audio stream (in ffprobe order) provide the
// indices. Color space, width and height are overwritten by every video or
// audio stream that reports them, so the last reporting stream wins.
//
// A reserved color space is returned without error even when the stream
// selection is incomplete, so callers can drop the input instead of failing.
func FromResult(path string, result ffprobe.Result) (TrackInfo, error) {
	info := TrackInfo{
		Path:     path,
		Duration: time.Duration(result.DurationSeconds() * float64(time.Second)),
		Size:     result.SizeBytes(),
	}
	videoSelected := false

	for _, stream := range result.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "video":
			if !videoSelected {
				videoSelected = true
				info.VideoIndex = stream.Index
				info.VideoCodec = stream.CodecName
			}
		case "audio":
			if info.AudioIndex == nil {
				index := stream.Index
				info.AudioIndex = &index
			}
		default:
			continue
		}
		if stream.ColorSpace != "" {
			info.ColorSpace = stream.ColorSpace
		}
		if stream.Width > 0 {
			info.Width = stream.Width
		}
		if stream.Height > 0 {
			info.Height = stream.Height
		}
	}

	if info.Reserved() {
		return info, nil
	}
	if !videoSelected {
		return TrackInfo{}, services.Wrap(services.ErrProbeFailure, "prober", "select", fmt.Sprintf("%s: no video stream", path), nil)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return TrackInfo{}, services.Wrap(services.ErrProbeFailure, "prober", "select", fmt.Sprintf("%s: no geometry reported", path), nil)
	}
	return info, nil
}
