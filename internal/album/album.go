package album

import (
	"fmt"

	"platter/internal/disc"
	"platter/internal/encoding"
)

// Source records which lookup source produced the album metadata.
type Source string

const (
	SourceMusicBrainz Source = "musicbrainz"
	SourceGnudb       Source = "gnudb"
	SourceCDText      Source = "cdtext"
	SourceManual      Source = "manual"
)

// Track is one album track. Metadata fields are user-editable after
// resolution; the descriptor is the immutable TOC entry it came from.
type Track struct {
	Descriptor disc.TrackDescriptor
	Title      string
	// Artist overrides the album artist when non-empty (compilations,
	// guest performers).
	Artist   string
	Composer string
	Selected bool
	Quality  encoding.Quality
}

// EffectiveArtist returns the track artist, falling back to the album's.
func (t Track) EffectiveArtist(albumArtist string) string {
	if t.Artist != "" {
		return t.Artist
	}
	return albumArtist
}

// Album is the resolved (or manually entered) album and its tracks. Track
// ordering matches physical track order; len(Tracks) always equals the TOC
// track count.
type Album struct {
	Title  string
	Artist string
	// Year is zero when unknown.
	Year   int
	Genre  string
	Source Source
	Tracks []Track
}

// NewManual builds a placeholder album for a TOC no source could resolve.
// Track titles are "Track N"; album title and artist are left blank for
// the user to fill in before tagging.
func NewManual(toc *disc.TOC, defaultQuality encoding.Quality) *Album {
	a := &Album{Source: SourceManual, Tracks: make([]Track, 0, toc.TrackCount())}
	for _, desc := range toc.Tracks {
		a.Tracks = append(a.Tracks, Track{
			Descriptor: desc,
			Title:      fmt.Sprintf("Track %d", desc.Number),
			Selected:   true,
			Quality:    defaultQuality,
		})
	}
	return a
}

// Clone deep-copies the album.
func (a *Album) Clone() *Album {
	cp := *a
	cp.Tracks = make([]Track, len(a.Tracks))
	copy(cp.Tracks, a.Tracks)
	return &cp
}

// SelectedTracks returns the tracks marked for ripping, in track order.
func (a *Album) SelectedTracks() []Track {
	var out []Track
	for _, tr := range a.Tracks {
		if tr.Selected {
			out = append(out, tr)
		}
	}
	return out
}
