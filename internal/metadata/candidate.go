package metadata

import (
	"context"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/disc/discid"
)

// CandidateTrack is one track of a lookup result.
type CandidateTrack struct {
	Title    string
	Artist   string
	Composer string
}

// Candidate is an album match returned by a lookup source. Sources return
// their first match only; disambiguation among multiple matches is a
// documented non-feature.
type Candidate struct {
	Album  string
	Artist string
	Year   int
	Genre  string
	Tracks []CandidateTrack
	Source album.Source
}

// LookupSource is one entry in the fallback chain.
type LookupSource interface {
	Name() string
	// Lookup returns the first matching candidate for the disc, or
	// services.ErrNotFound when the service has no entry for it. Any
	// other error is a transport/protocol failure; the caller falls
	// through to the next source either way.
	Lookup(ctx context.Context, fp discid.Fingerprint, toc *disc.TOC) (*Candidate, error)
}
