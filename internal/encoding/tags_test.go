package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

func TestTagMP3RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "05.mp3")
	if err := os.WriteFile(path, []byte("audio payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Tag(path, FormatMP3, TagSet{
		Album:       "Brothers in Arms",
		AlbumArtist: "Dire Straits",
		Artist:      "Dire Straits",
		Title:       "Money for Nothing",
		Composer:    "Knopfler",
		Genre:       "Rock",
		Year:        1985,
		TrackNumber: 5,
		TrackTotal:  9,
	})
	if err != nil {
		t.Fatalf("Tag: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "Money for Nothing" {
		t.Errorf("title = %q", got)
	}
	if got := tag.Artist(); got != "Dire Straits" {
		t.Errorf("artist = %q", got)
	}
	if got := tag.Album(); got != "Brothers in Arms" {
		t.Errorf("album = %q", got)
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "5/9" {
		t.Errorf("track frame = %q", got)
	}
	if got := tag.GetTextFrame("TPE2").Text; got != "Dire Straits" {
		t.Errorf("album artist frame = %q", got)
	}
	if got := tag.GetTextFrame("TCOM").Text; got != "Knopfler" {
		t.Errorf("composer frame = %q", got)
	}
}

func TestTagSkipsEmbeddedTagFormats(t *testing.T) {
	// Vorbis, Opus and WAV never reach the tagging pass, so a missing file
	// must not be an error.
	for _, format := range []Format{FormatOGG, FormatOpus, FormatWAV} {
		if err := Tag("/nonexistent/path", format, TagSet{Title: "x"}); err != nil {
			t.Errorf("Tag(%s) = %v, want nil", format, err)
		}
	}
}
