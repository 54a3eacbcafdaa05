package rip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"platter/internal/album"
)

// PlaylistEntry pairs a completed output file with the track it came from.
type PlaylistEntry struct {
	Track album.Track
	Path  string
}

// WritePlaylist writes an extended M3U playlist listing completed tracks
// in track order. Paths are written relative to the playlist's directory
// so the album folder stays relocatable.
func WritePlaylist(path string, a *album.Album, entries []PlaylistEntry) error {
	dir := filepath.Dir(path)
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, entry := range entries {
		seconds := int(entry.Track.Descriptor.Duration().Seconds())
		artist := entry.Track.EffectiveArtist(a.Artist)
		fmt.Fprintf(&b, "#EXTINF:%d,%s - %s\n", seconds, artist, entry.Track.Title)
		rel, err := filepath.Rel(dir, entry.Path)
		if err != nil {
			rel = entry.Path
		}
		b.WriteString(rel + "\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write playlist: %w", err)
	}
	return nil
}
