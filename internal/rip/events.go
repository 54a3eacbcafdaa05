package rip

import "errors"

// ErrAlreadyExists reports a destination file that ripping refused to
// overwrite.
var ErrAlreadyExists = errors.New("destination already exists")

// EventType identifies one entry of a job's event stream.
type EventType string

const (
	EventTrackStarted   EventType = "track_started"
	EventTrackProgress  EventType = "track_progress"
	EventTrackCompleted EventType = "track_completed"
	EventTrackFailed    EventType = "track_failed"
	EventJobCompleted   EventType = "job_completed"
	EventJobFailed      EventType = "job_failed"
	EventJobCancelled   EventType = "job_cancelled"
)

// Event is one observation from a running job. Track is the 1-based disc
// track number and is zero for job-level events. Exactly one of the three
// job-level events terminates every stream.
type Event struct {
	Type EventType
	// Track is the disc track number the event refers to.
	Track int
	// Fraction is the pipeline progress of the current track, 0 to 1.
	Fraction float64
	// Path is the final output file of a completed track.
	Path string
	// Err is the failure reason for track and job failures.
	Err error
}
