package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"platter/internal/album"
	"platter/internal/config"
	"platter/internal/disc"
	"platter/internal/encoding"
	"platter/internal/logging"
	"platter/internal/metadata"
	"platter/internal/metadata/gnudb"
	"platter/internal/metadata/musicbrainz"
)

func resolveDevice(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		if device := strings.TrimSpace(args[0]); device != "" {
			return device, nil
		}
	}
	if cfg.Drive.Device != "" {
		return cfg.Drive.Device, nil
	}
	return "", fmt.Errorf("no device specified and no drive device configured")
}

// newResolver builds the lookup chain from the configured source URLs.
// A source with a blank URL is left out of the chain; config validation
// guarantees at least one URL is set.
func newResolver(cfg *config.Config, logger *slog.Logger) (*metadata.Resolver, error) {
	timeout := time.Duration(cfg.Metadata.TimeoutSeconds) * time.Second

	var sources []metadata.LookupSource
	if strings.TrimSpace(cfg.Metadata.MusicBrainzURL) != "" {
		mb, err := musicbrainz.New(cfg.Metadata.MusicBrainzURL, cfg.Metadata.UserAgent, timeout)
		if err != nil {
			return nil, fmt.Errorf("create musicbrainz client: %w", err)
		}
		sources = append(sources, mb)
	}
	if strings.TrimSpace(cfg.Metadata.GnudbURL) != "" {
		gdb, err := gnudb.New(cfg.Metadata.GnudbURL, cfg.Metadata.UserAgent, timeout)
		if err != nil {
			return nil, fmt.Errorf("create gnudb client: %w", err)
		}
		sources = append(sources, gdb)
	}

	quality, err := encoding.ParseQuality(cfg.Encoding.Quality)
	if err != nil {
		return nil, err
	}
	return metadata.NewResolver(logger, quality, sources...), nil
}

// readCDText fetches on-disc text when the feature is enabled. Failures
// only cost the overlay, so they are logged and swallowed.
func readCDText(ctx context.Context, cfg *config.Config, device string, logger *slog.Logger) *disc.CDText {
	if !cfg.Drive.ReadCDText {
		return nil
	}
	reader := disc.NewCDTextReader(cfg.Drive.CDInfoBinary, device)
	text, err := reader.ReadCDText(ctx)
	if err != nil {
		logger.Warn("cd-text read failed", logging.String("device", device), logging.Error(err))
		return nil
	}
	return text
}

func formatTrackDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func sourceLabel(source album.Source) string {
	switch source {
	case album.SourceMusicBrainz:
		return "MusicBrainz"
	case album.SourceGnudb:
		return "GNUDB"
	case album.SourceCDText:
		return "CD-Text"
	default:
		return "manual entry"
	}
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
