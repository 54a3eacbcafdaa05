package disc

import (
	"errors"
	"fmt"
	"time"
)

// SectorsPerSecond is the CD-DA frame rate: 75 sectors of audio per second.
const SectorsPerSecond = 75

// LeadInSectors is the fixed offset between logical block addresses and the
// absolute frame offsets used by disc ID algorithms.
const LeadInSectors = 150

// ErrorKind classifies drive failures.
type ErrorKind int

const (
	// NoDisc means the drive is empty or the tray is open.
	NoDisc ErrorKind = iota
	// IoError covers read failures talking to the drive.
	IoError
	// UnreadableTOC means a disc is present but its table of contents
	// could not be parsed (e.g. a pure data disc).
	UnreadableTOC
)

// Error is a drive failure. Drive failures are fatal to the session; there
// is no automatic retry.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	var label string
	switch e.Kind {
	case NoDisc:
		label = "no disc in drive"
	case UnreadableTOC:
		label = "unreadable table of contents"
	default:
		label = "drive I/O failure"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", label, e.Err)
	}
	return label
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err as a drive failure of the given kind.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// IsNoDisc reports whether err is a NoDisc drive failure.
func IsNoDisc(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == NoDisc
}

// TrackDescriptor locates one audio track on the disc. Produced by the TOC
// read, never mutated.
type TrackDescriptor struct {
	// Number is the 1-based track number as printed on the sleeve.
	Number int
	// StartSector is the logical block address of the first audio sector.
	StartSector int
	// LengthSectors is the track length in audio sectors.
	LengthSectors int
}

// Duration returns the playing time of the track.
func (d TrackDescriptor) Duration() time.Duration {
	return time.Duration(d.LengthSectors) * time.Second / SectorsPerSecond
}

// OffsetFrames returns the absolute frame offset used by disc ID
// algorithms (start sector plus the two-second lead-in).
func (d TrackDescriptor) OffsetFrames() int {
	return d.StartSector + LeadInSectors
}

// TOC is the table of contents of one disc read.
type TOC struct {
	Tracks []TrackDescriptor
	// LeadOutSector is the logical block address where the lead-out starts.
	LeadOutSector int
}

// TrackCount returns the number of audio tracks.
func (t *TOC) TrackCount() int { return len(t.Tracks) }

// LeadOutFrames returns the absolute frame offset of the lead-out.
func (t *TOC) LeadOutFrames() int { return t.LeadOutSector + LeadInSectors }

// TotalDuration returns the playing time of the whole disc.
func (t *TOC) TotalDuration() time.Duration {
	if len(t.Tracks) == 0 {
		return 0
	}
	sectors := t.LeadOutSector - t.Tracks[0].StartSector
	return time.Duration(sectors) * time.Second / SectorsPerSecond
}

// Validate reports structural problems: zero tracks, non-monotonic starts,
// or a lead-out that does not close the final track.
func (t *TOC) Validate() error {
	if len(t.Tracks) == 0 {
		return errors.New("toc has no audio tracks")
	}
	prevEnd := -1
	for i, tr := range t.Tracks {
		if tr.Number != i+1 {
			return fmt.Errorf("track %d has unexpected number %d", i+1, tr.Number)
		}
		if tr.StartSector < prevEnd {
			return fmt.Errorf("track %d overlaps previous track", tr.Number)
		}
		if tr.LengthSectors <= 0 {
			return fmt.Errorf("track %d has non-positive length", tr.Number)
		}
		prevEnd = tr.StartSector + tr.LengthSectors
	}
	if t.LeadOutSector < prevEnd {
		return fmt.Errorf("lead-out sector %d precedes final track end %d", t.LeadOutSector, prevEnd)
	}
	return nil
}
