package config

const (
	defaultInputDir             = "~/butler/input"
	defaultOutputDir            = "~/butler/output"
	defaultMinimumAgeSeconds    = 2 * 3600
	defaultSongIDBaseURL        = "https://api.audd.io"
	defaultSongIDTimeoutSeconds = 30
	defaultConvertBinary        = "soffice"
	defaultConvertTimeout       = 120
	defaultMaxCollisionAttempts = 10000
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Scanner: Scanner{
			MinimumAgeSeconds: defaultMinimumAgeSeconds,
			DeleteExtensions:  []string{".torrent", ".tmp", ".crdownload"},
		},
		SongID: SongID{
			Enabled:        true,
			BaseURL:        defaultSongIDBaseURL,
			TimeoutSeconds: defaultSongIDTimeoutSeconds,
		},
		Office: Office{
			ConvertEnabled:        true,
			ConvertBinary:         defaultConvertBinary,
			ConvertTimeoutSeconds: defaultConvertTimeout,
		},
		Naming: Naming{
			MaxCollisionAttempts: defaultMaxCollisionAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
