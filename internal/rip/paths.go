package rip

import (
	"fmt"
	"path/filepath"

	"platter/internal/album"
	"platter/internal/encoding"
	"platter/internal/textutil"
)

// AlbumDir computes the album directory under the library root. Hostile
// characters are always stripped from the artist and album names; the
// stripping is not configurable.
func AlbumDir(root string, a *album.Album) string {
	artist := textutil.SanitizePathComponent(a.Artist)
	title := textutil.SanitizePathComponent(a.Title)
	return filepath.Join(root, fmt.Sprintf("%s - %s", artist, title))
}

// PlaylistFileName computes the album playlist file name.
func PlaylistFileName(a *album.Album) string {
	return textutil.SanitizePathComponent(a.Title) + ".m3u"
}

// TrackFileName computes the "NN - Title.ext" file name for one track.
func TrackFileName(tr album.Track, format encoding.Format) string {
	title := textutil.SanitizePathComponent(tr.Title)
	return fmt.Sprintf("%02d - %s%s", tr.Descriptor.Number, title, format.Extension())
}
