package disc

import "testing"

const sampleCDInfo = `CD-ROM Track List (1 - 3)
  #: MSF       LSN    Type   Green? Copy? Channels Premphasis?
  1: 00:02:00  000000 audio  false  no    2        no
CD-TEXT for Disc:
	TITLE: Brothers in Arms
	PERFORMER: Dire Straits
	GENRE: Rock
CD-TEXT for Track  1:
	TITLE: So Far Away
	PERFORMER: Dire Straits
CD-TEXT for Track  2:
	TITLE: Money for Nothing
	PERFORMER: Dire Straits
	COMPOSER: Knopfler
`

func TestParseCDInfoText(t *testing.T) {
	text := parseCDInfoText(sampleCDInfo)
	if text == nil {
		t.Fatal("expected CD-Text")
	}
	if text.AlbumTitle != "Brothers in Arms" {
		t.Errorf("album title = %q", text.AlbumTitle)
	}
	if text.AlbumArtist != "Dire Straits" {
		t.Errorf("album artist = %q", text.AlbumArtist)
	}
	if text.Genre != "Rock" {
		t.Errorf("genre = %q", text.Genre)
	}
	if got := text.Tracks[2].Title; got != "Money for Nothing" {
		t.Errorf("track 2 title = %q", got)
	}
	if got := text.Tracks[2].Composer; got != "Knopfler" {
		t.Errorf("track 2 composer = %q", got)
	}
	if _, ok := text.Tracks[3]; ok {
		t.Error("unexpected track 3 entry")
	}
}

func TestParseCDInfoTextAbsent(t *testing.T) {
	if text := parseCDInfoText("CD-ROM Track List (1 - 12)\nno text here\n"); text != nil {
		t.Errorf("expected nil for output without CD-TEXT, got %+v", text)
	}
}

func TestParseCDInfoTextDiscTitleRequired(t *testing.T) {
	out := "CD-TEXT for Track  1:\n\tTITLE: Orphan\n"
	if text := parseCDInfoText(out); text != nil {
		t.Errorf("expected nil when disc-level title missing, got %+v", text)
	}
}
