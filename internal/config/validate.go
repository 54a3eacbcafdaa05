package config

import (
	"fmt"
	"strings"
)

var validFormats = map[string]struct{}{
	"flac": {},
	"mp3":  {},
	"ogg":  {},
	"opus": {},
	"wav":  {},
}

var validQualities = map[string]struct{}{
	"low":    {},
	"medium": {},
	"high":   {},
}

// Validate checks the configuration for values that would make a rip
// impossible. It reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("config: paths.output_dir must not be empty")
	}
	if strings.TrimSpace(c.Drive.Device) == "" {
		return fmt.Errorf("config: drive.device must not be empty")
	}
	if _, ok := validFormats[c.Encoding.Format]; !ok {
		return fmt.Errorf("config: encoding.format %q not supported (flac, mp3, ogg, opus, wav)", c.Encoding.Format)
	}
	if _, ok := validQualities[c.Encoding.Quality]; !ok {
		return fmt.Errorf("config: encoding.quality %q not supported (low, medium, high)", c.Encoding.Quality)
	}
	if strings.TrimSpace(c.Metadata.MusicBrainzURL) == "" && strings.TrimSpace(c.Metadata.GnudbURL) == "" {
		return fmt.Errorf("config: at least one metadata source URL must be set")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format %q not supported (console, json)", c.Logging.Format)
	}
	return nil
}
