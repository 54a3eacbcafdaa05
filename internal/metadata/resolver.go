package metadata

import (
	"context"
	"errors"
	"log/slog"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/disc/discid"
	"platter/internal/encoding"
	"platter/internal/logging"
	"platter/internal/services"
)

// Resolver tries each lookup source in order and merges the winning
// candidate with on-disc text.
type Resolver struct {
	sources        []LookupSource
	defaultQuality encoding.Quality
	logger         *slog.Logger
}

// NewResolver builds a resolver over the given source chain. Order
// matters: the first source to return a candidate wins regardless of what
// later sources might know.
func NewResolver(logger *slog.Logger, defaultQuality encoding.Quality, sources ...LookupSource) *Resolver {
	return &Resolver{
		sources:        sources,
		defaultQuality: defaultQuality,
		logger:         logging.NewComponentLogger(logger, "metadata"),
	}
}

// Resolve produces exactly one album for the disc. It never fails: when
// every source misses and no CD-Text is present, the result is a manual
// album with placeholder track titles.
func (r *Resolver) Resolve(ctx context.Context, fp discid.Fingerprint, toc *disc.TOC, text *disc.CDText) *album.Album {
	for _, source := range r.sources {
		if ctx.Err() != nil {
			break
		}
		candidate, err := source.Lookup(ctx, fp, toc)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				r.logger.Info("no match", logging.String("source", source.Name()))
			} else {
				r.logger.Warn("lookup failed, falling back",
					logging.String("source", source.Name()),
					logging.Error(err),
				)
			}
			continue
		}
		if candidate == nil || len(candidate.Tracks) != toc.TrackCount() {
			r.logger.Warn("candidate track count does not match TOC, falling back",
				logging.String("source", source.Name()),
			)
			continue
		}
		r.logger.Info("resolved album",
			logging.String("source", source.Name()),
			logging.String("album", candidate.Album),
			logging.String("artist", candidate.Artist),
		)
		resolved := r.fromCandidate(candidate, toc)
		overlayCDText(resolved, text)
		return resolved
	}

	if a := r.fromCDText(text, toc); a != nil {
		r.logger.Info("using on-disc text only", logging.String("album", a.Title))
		return a
	}

	r.logger.Info("all sources missed, entering manual mode")
	return album.NewManual(toc, r.defaultQuality)
}

func (r *Resolver) fromCandidate(c *Candidate, toc *disc.TOC) *album.Album {
	a := &album.Album{
		Title:  c.Album,
		Artist: c.Artist,
		Year:   c.Year,
		Genre:  c.Genre,
		Source: c.Source,
		Tracks: make([]album.Track, 0, toc.TrackCount()),
	}
	for i, desc := range toc.Tracks {
		ct := c.Tracks[i]
		a.Tracks = append(a.Tracks, album.Track{
			Descriptor: desc,
			Title:      ct.Title,
			Artist:     trackArtistOverride(ct.Artist, c.Artist),
			Composer:   ct.Composer,
			Selected:   true,
			Quality:    r.defaultQuality,
		})
	}
	return a
}

// fromCDText builds an album from on-disc text alone. Returns nil when the
// text is absent or unusable.
func (r *Resolver) fromCDText(text *disc.CDText, toc *disc.TOC) *album.Album {
	if text == nil || text.AlbumTitle == "" {
		return nil
	}
	a := album.NewManual(toc, r.defaultQuality)
	a.Source = album.SourceCDText
	a.Title = text.AlbumTitle
	a.Artist = text.AlbumArtist
	a.Genre = text.Genre
	for i := range a.Tracks {
		entry, ok := text.Tracks[a.Tracks[i].Descriptor.Number]
		if !ok {
			continue
		}
		if entry.Title != "" {
			a.Tracks[i].Title = entry.Title
		}
		a.Tracks[i].Artist = trackArtistOverride(entry.Performer, a.Artist)
		a.Tracks[i].Composer = entry.Composer
	}
	return a
}

// overlayCDText fills fields the network source left blank. Network data
// always wins where both are present.
func overlayCDText(a *album.Album, text *disc.CDText) {
	if text == nil {
		return
	}
	if a.Title == "" {
		a.Title = text.AlbumTitle
	}
	if a.Artist == "" {
		a.Artist = text.AlbumArtist
	}
	if a.Genre == "" {
		a.Genre = text.Genre
	}
	for i := range a.Tracks {
		entry, ok := text.Tracks[a.Tracks[i].Descriptor.Number]
		if !ok {
			continue
		}
		if a.Tracks[i].Title == "" {
			a.Tracks[i].Title = entry.Title
		}
		if a.Tracks[i].Composer == "" {
			a.Tracks[i].Composer = entry.Composer
		}
	}
}

// trackArtistOverride returns the per-track artist only when it differs
// from the album artist; identical values stay on the album.
func trackArtistOverride(trackArtist, albumArtist string) string {
	if trackArtist == "" || trackArtist == albumArtist {
		return ""
	}
	return trackArtist
}
