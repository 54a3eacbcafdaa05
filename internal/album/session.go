package album

import (
	"errors"
	"fmt"
	"sync"

	"platter/internal/encoding"
)

// ErrFrozen is returned by mutators while a rip snapshot is outstanding.
var ErrFrozen = errors.New("album is frozen while a rip job is active")

// Session owns the album between resolution and rip completion. It
// enforces the single-writer rule: once Snapshot is taken the model is
// read-only until Release.
type Session struct {
	mu     sync.Mutex
	album  *Album
	frozen bool
}

// NewSession wraps a resolved album for editing.
func NewSession(a *Album) *Session {
	return &Session{album: a}
}

// Album returns a copy of the current model for display.
func (s *Session) Album() *Album {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.album.Clone()
}

// Frozen reports whether a snapshot is outstanding.
func (s *Session) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// Snapshot deep-copies the model for a rip job and freezes the session.
func (s *Session) Snapshot() (*Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return nil, errors.New("a rip job is already active for this session")
	}
	s.frozen = true
	return s.album.Clone(), nil
}

// Release unfreezes the session after the rip job reaches a terminal
// state.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = false
}

func (s *Session) mutate(fn func(*Album) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return ErrFrozen
	}
	return fn(s.album)
}

// SetTitle sets the album title.
func (s *Session) SetTitle(title string) error {
	return s.mutate(func(a *Album) error {
		a.Title = title
		return nil
	})
}

// SetArtist sets the album artist.
func (s *Session) SetArtist(artist string) error {
	return s.mutate(func(a *Album) error {
		a.Artist = artist
		return nil
	})
}

// SetYear sets the release year; zero clears it.
func (s *Session) SetYear(year int) error {
	return s.mutate(func(a *Album) error {
		a.Year = year
		return nil
	})
}

// SetGenre sets the album genre.
func (s *Session) SetGenre(genre string) error {
	return s.mutate(func(a *Album) error {
		a.Genre = genre
		return nil
	})
}

func (s *Session) mutateTrack(number int, fn func(*Track)) error {
	return s.mutate(func(a *Album) error {
		if number < 1 || number > len(a.Tracks) {
			return fmt.Errorf("no track %d on this disc", number)
		}
		fn(&a.Tracks[number-1])
		return nil
	})
}

// SetTrackTitle sets the title of the 1-based track number.
func (s *Session) SetTrackTitle(number int, title string) error {
	return s.mutateTrack(number, func(t *Track) { t.Title = title })
}

// SetTrackArtist sets the per-track artist override.
func (s *Session) SetTrackArtist(number int, artist string) error {
	return s.mutateTrack(number, func(t *Track) { t.Artist = artist })
}

// ToggleTrackSelected flips whether the track will be ripped.
func (s *Session) ToggleTrackSelected(number int) error {
	return s.mutateTrack(number, func(t *Track) { t.Selected = !t.Selected })
}

// SetTrackSelected sets the selection state directly.
func (s *Session) SetTrackSelected(number int, selected bool) error {
	return s.mutateTrack(number, func(t *Track) { t.Selected = selected })
}

// SetTrackQuality sets the encode quality tier for the track.
func (s *Session) SetTrackQuality(number int, quality encoding.Quality) error {
	return s.mutateTrack(number, func(t *Track) { t.Quality = quality })
}
