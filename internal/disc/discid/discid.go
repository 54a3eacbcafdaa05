package discid

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"platter/internal/disc"
)

// Fingerprint holds the lookup keys for one disc, computed once per
// session and immutable afterwards.
type Fingerprint struct {
	// MusicBrainz is the MusicBrainz disc ID (28-character modified
	// base64 of a SHA-1 digest).
	MusicBrainz string
	// FreeDB is the 8-digit hex CDDB disc ID used by gnudb.
	FreeDB string
	// TrackCount is carried along because the CDDB query wire format
	// needs it next to the ID.
	TrackCount int
}

// Compute derives both lookup keys from the TOC.
func Compute(toc *disc.TOC) (Fingerprint, error) {
	if toc == nil || len(toc.Tracks) == 0 {
		return Fingerprint{}, errors.New("discid: empty table of contents")
	}
	if len(toc.Tracks) > 99 {
		return Fingerprint{}, fmt.Errorf("discid: %d tracks exceeds the CD maximum of 99", len(toc.Tracks))
	}
	return Fingerprint{
		MusicBrainz: musicBrainzID(toc),
		FreeDB:      freeDBID(toc),
		TrackCount:  len(toc.Tracks),
	}, nil
}

// mbEncoding is standard base64 with the URL- and shell-hostile characters
// replaced, as the MusicBrainz disc ID spec requires.
var mbEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789._").
	WithPadding('-')

// musicBrainzID hashes the first and last track numbers followed by 100
// frame offsets: the lead-out first, then each track's offset, zero-padded
// to slot 99. Every value is rendered as uppercase hex before hashing.
func musicBrainzID(toc *disc.TOC) string {
	first := toc.Tracks[0].Number
	last := toc.Tracks[len(toc.Tracks)-1].Number

	var b strings.Builder
	fmt.Fprintf(&b, "%02X%02X", first, last)
	fmt.Fprintf(&b, "%08X", toc.LeadOutFrames())
	for i := 0; i < 99; i++ {
		offset := 0
		if i < len(toc.Tracks) {
			offset = toc.Tracks[i].OffsetFrames()
		}
		fmt.Fprintf(&b, "%08X", offset)
	}

	digest := sha1.Sum([]byte(b.String()))
	return mbEncoding.EncodeToString(digest[:])
}

// freeDBID implements the classic CDDB hash:
// ((n mod 255) << 24) | (total seconds << 16) | track count,
// where n sums the decimal digits of each track's start time in seconds.
func freeDBID(toc *disc.TOC) string {
	n := 0
	for _, tr := range toc.Tracks {
		n += digitSum(tr.OffsetFrames() / disc.SectorsPerSecond)
	}
	t := toc.LeadOutFrames()/disc.SectorsPerSecond - toc.Tracks[0].OffsetFrames()/disc.SectorsPerSecond
	id := uint32(n%0xff)<<24 | uint32(t)<<16 | uint32(len(toc.Tracks))
	return fmt.Sprintf("%08x", id)
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
