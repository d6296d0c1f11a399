package config

const (
	// FileName is the settings file looked up inside the config directory.
	FileName = "settings.toml"

	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultVideoCodec    = "libx265"
	defaultSilenceSource = "anullsrc=channel_layout=stereo"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Settings populated with repository defaults.
func Default() Settings {
	return Settings{
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			VideoCodec:    defaultVideoCodec,
			SilenceSource: defaultSilenceSource,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
