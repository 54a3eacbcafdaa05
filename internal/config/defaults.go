package config

const (
	defaultOutputDir       = "~/Music"
	defaultLogDir          = "~/.local/share/platter/logs"
	defaultHistoryDB       = "~/.local/share/platter/history.db"
	defaultDevice          = "/dev/cdrom"
	defaultCDInfoBinary    = "cd-info"
	defaultFormat          = "flac"
	defaultQuality         = "high"
	defaultFFmpegBinary    = "ffmpeg"
	defaultMusicBrainzURL  = "https://musicbrainz.org/ws/2"
	defaultGnudbURL        = "https://gnudb.gnudb.org/~cddb/cddb.cgi"
	defaultUserAgent       = "platter/0.1"
	defaultMetadataTimeout = 15
	defaultNtfyTimeout     = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Drive: Drive{
			Device:        defaultDevice,
			EjectAfterRip: true,
			ReadCDText:    true,
			CDInfoBinary:  defaultCDInfoBinary,
		},
		Encoding: Encoding{
			Format:       defaultFormat,
			Quality:      defaultQuality,
			Playlist:     true,
			FFmpegBinary: defaultFFmpegBinary,
		},
		Metadata: Metadata{
			MusicBrainzURL: defaultMusicBrainzURL,
			GnudbURL:       defaultGnudbURL,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultMetadataTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
