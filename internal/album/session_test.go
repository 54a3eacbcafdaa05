package album

import (
	"errors"
	"testing"

	"platter/internal/disc"
	"platter/internal/encoding"
)

func threeTrackTOC() *disc.TOC {
	return &disc.TOC{
		Tracks: []disc.TrackDescriptor{
			{Number: 1, StartSector: 0, LengthSectors: 1500},
			{Number: 2, StartSector: 1500, LengthSectors: 2250},
			{Number: 3, StartSector: 3750, LengthSectors: 3000},
		},
		LeadOutSector: 6750,
	}
}

func TestNewManualPlaceholders(t *testing.T) {
	a := NewManual(threeTrackTOC(), encoding.QualityMedium)
	if a.Source != SourceManual {
		t.Errorf("source = %q, want manual", a.Source)
	}
	if a.Title != "" || a.Artist != "" {
		t.Errorf("manual album should have blank title/artist, got %q/%q", a.Title, a.Artist)
	}
	if len(a.Tracks) != 3 {
		t.Fatalf("track count = %d, want 3", len(a.Tracks))
	}
	for i, tr := range a.Tracks {
		want := map[int]string{0: "Track 1", 1: "Track 2", 2: "Track 3"}[i]
		if tr.Title != want {
			t.Errorf("track %d title = %q, want %q", i+1, tr.Title, want)
		}
		if !tr.Selected {
			t.Errorf("track %d should default to selected", i+1)
		}
		if tr.Quality != encoding.QualityMedium {
			t.Errorf("track %d quality = %q", i+1, tr.Quality)
		}
	}
}

func TestSessionMutators(t *testing.T) {
	s := NewSession(NewManual(threeTrackTOC(), encoding.QualityHigh))

	if err := s.SetTitle("Test Album"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetArtist("Test Artist"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTrackTitle(2, "B"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleTrackSelected(2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTrackQuality(3, encoding.QualityLow); err != nil {
		t.Fatal(err)
	}

	a := s.Album()
	if a.Title != "Test Album" || a.Artist != "Test Artist" {
		t.Errorf("album = %q / %q", a.Title, a.Artist)
	}
	if a.Tracks[1].Title != "B" || a.Tracks[1].Selected {
		t.Errorf("track 2 = %+v", a.Tracks[1])
	}
	if a.Tracks[2].Quality != encoding.QualityLow {
		t.Errorf("track 3 quality = %q", a.Tracks[2].Quality)
	}

	selected := a.SelectedTracks()
	if len(selected) != 2 || selected[0].Descriptor.Number != 1 || selected[1].Descriptor.Number != 3 {
		t.Errorf("selected tracks = %+v", selected)
	}
}

func TestSessionRejectsUnknownTrack(t *testing.T) {
	s := NewSession(NewManual(threeTrackTOC(), encoding.QualityHigh))
	if err := s.SetTrackTitle(0, "x"); err == nil {
		t.Error("track 0 should be rejected")
	}
	if err := s.SetTrackTitle(4, "x"); err == nil {
		t.Error("track 4 should be rejected")
	}
}

func TestSessionFreeze(t *testing.T) {
	s := NewSession(NewManual(threeTrackTOC(), encoding.QualityHigh))

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Frozen() {
		t.Error("session should be frozen after snapshot")
	}
	if err := s.SetTitle("nope"); !errors.Is(err, ErrFrozen) {
		t.Errorf("mutation while frozen = %v, want ErrFrozen", err)
	}
	if _, err := s.Snapshot(); err == nil {
		t.Error("second snapshot while frozen should fail")
	}

	// The snapshot is a copy: editing it must not touch the session model.
	snap.Tracks[0].Title = "mutated"
	s.Release()
	if got := s.Album().Tracks[0].Title; got != "Track 1" {
		t.Errorf("snapshot mutation leaked into session: %q", got)
	}

	if err := s.SetTitle("after release"); err != nil {
		t.Errorf("mutation after release failed: %v", err)
	}
}

func TestEffectiveArtist(t *testing.T) {
	tr := Track{Artist: ""}
	if got := tr.EffectiveArtist("Album Artist"); got != "Album Artist" {
		t.Errorf("got %q", got)
	}
	tr.Artist = "Guest"
	if got := tr.EffectiveArtist("Album Artist"); got != "Guest" {
		t.Errorf("got %q", got)
	}
}
