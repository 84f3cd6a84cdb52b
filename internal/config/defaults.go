package config

const (
	defaultConfigPath    = "~/.config/tidymux/config.toml"
	projectConfigName    = "tidymux.toml"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultOutputSuffix  = ".cleaned"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	// EnvFFmpeg and EnvFFprobe override the tool binaries when the config
	// file leaves them unset.
	EnvFFmpeg  = "TIDYMUX_FFMPEG"
	EnvFFprobe = "TIDYMUX_FFPROBE"
)

// DefaultExtensions lists the container extensions discovered in directories.
var DefaultExtensions = []string{
	".mkv", ".mp4", ".avi", ".mov", ".flv", ".wmv", ".mpeg", ".mpg",
	".m4v", ".webm", ".ts", ".ogm", ".ogv",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Cleaning: Cleaning{
			CleanMetadata: true,
			OutputSuffix:  defaultOutputSuffix,
			Extensions:    append([]string(nil), DefaultExtensions...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
