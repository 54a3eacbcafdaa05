package rip

import (
	"path/filepath"
	"testing"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/encoding"
)

func TestAlbumDirStripsHostileCharacters(t *testing.T) {
	a := &album.Album{Artist: "AC/DC", Title: "Back in Black"}
	got := AlbumDir("/music", a)
	if got != filepath.Join("/music", "AC_DC - Back in Black") {
		t.Errorf("AlbumDir = %q", got)
	}
}

func TestAlbumDirBlankFieldsFallBack(t *testing.T) {
	a := &album.Album{}
	got := AlbumDir("/music", a)
	if got != filepath.Join("/music", "Unknown - Unknown") {
		t.Errorf("AlbumDir = %q", got)
	}
}

func TestPlaylistFileName(t *testing.T) {
	a := &album.Album{Title: "Back in Black"}
	if got := PlaylistFileName(a); got != "Back in Black.m3u" {
		t.Errorf("PlaylistFileName = %q", got)
	}
	if got := PlaylistFileName(&album.Album{}); got != "Unknown.m3u" {
		t.Errorf("PlaylistFileName = %q", got)
	}
}

func TestTrackFileName(t *testing.T) {
	tr := album.Track{
		Descriptor: disc.TrackDescriptor{Number: 3},
		Title:      "What's Next?",
	}
	if got := TrackFileName(tr, encoding.FormatFLAC); got != "03 - What_s Next_.flac" {
		// The question mark and apostrophe both sanitize to underscores.
		t.Errorf("TrackFileName = %q", got)
	}
}
