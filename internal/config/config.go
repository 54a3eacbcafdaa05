package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and database locations.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	HistoryDB string `toml:"history_db"`
}

// Drive contains optical drive configuration.
type Drive struct {
	Device        string `toml:"device"`
	EjectAfterRip bool   `toml:"eject_after_rip"`
	ReadCDText    bool   `toml:"read_cdtext"`
	CDInfoBinary  string `toml:"cd_info_binary"`
}

// Encoding contains output format and encoder configuration.
type Encoding struct {
	Format       string `toml:"format"`
	Quality      string `toml:"quality"`
	Overwrite    bool   `toml:"overwrite"`
	Playlist     bool   `toml:"playlist"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
}

// Metadata contains configuration for the lookup source chain.
type Metadata struct {
	MusicBrainzURL string `toml:"musicbrainz_url"`
	GnudbURL       string `toml:"gnudb_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration document.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Drive         Drive         `toml:"drive"`
	Encoding      Encoding      `toml:"encoding"`
	Metadata      Metadata      `toml:"metadata"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return expandHome("~/.config/platter/config.toml")
}

// Load reads the config file at path, applying defaults for missing values.
// When path is empty the default location is used; a missing file at the
// default location is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			cfg.normalize()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Paths.OutputDir = expandHome(c.Paths.OutputDir)
	c.Paths.LogDir = expandHome(c.Paths.LogDir)
	c.Paths.HistoryDB = expandHome(c.Paths.HistoryDB)
	c.Encoding.Format = strings.ToLower(strings.TrimSpace(c.Encoding.Format))
	c.Encoding.Quality = strings.ToLower(strings.TrimSpace(c.Encoding.Quality))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Metadata.TimeoutSeconds <= 0 {
		c.Metadata.TimeoutSeconds = defaultMetadataTimeout
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
