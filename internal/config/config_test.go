package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[encoding]
format = "MP3"
quality = "Medium"

[drive]
device = "/dev/sr1"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Encoding.Format != "mp3" {
		t.Errorf("format = %q, want mp3", cfg.Encoding.Format)
	}
	if cfg.Encoding.Quality != "medium" {
		t.Errorf("quality = %q, want medium", cfg.Encoding.Quality)
	}
	if cfg.Drive.Device != "/dev/sr1" {
		t.Errorf("device = %q", cfg.Drive.Device)
	}
	// Untouched sections keep defaults.
	if cfg.Metadata.MusicBrainzURL != defaultMusicBrainzURL {
		t.Errorf("musicbrainz url = %q", cfg.Metadata.MusicBrainzURL)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[encoding]\nformat = \"aac\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "encoding.format") {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error when config already exists")
	}
	// The sample must itself be loadable.
	if _, err := Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/Music"); got != filepath.Join(home, "Music") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome should leave absolute paths alone, got %q", got)
	}
}
