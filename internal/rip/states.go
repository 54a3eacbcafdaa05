package rip

import "fmt"

// TrackState is the pipeline position of one track.
type TrackState string

const (
	TrackPending    TrackState = "pending"
	TrackExtracting TrackState = "extracting"
	TrackEncoding   TrackState = "encoding"
	TrackTagging    TrackState = "tagging"
	TrackCompleted  TrackState = "completed"
	TrackFailed     TrackState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s TrackState) Terminal() bool {
	return s == TrackCompleted || s == TrackFailed
}

var trackTransitions = map[TrackState]TrackState{
	TrackPending:    TrackExtracting,
	TrackExtracting: TrackEncoding,
	TrackEncoding:   TrackTagging,
	TrackTagging:    TrackCompleted,
}

// CanTransition reports whether to is reachable from s in one step. Failed
// is reachable from every non-terminal state.
func (s TrackState) CanTransition(to TrackState) bool {
	if to == TrackFailed {
		return !s.Terminal()
	}
	return trackTransitions[s] == to
}

// JobState is the lifecycle position of one job.
type JobState string

const (
	JobIdle      JobState = "idle"
	JobRunning   JobState = "running"
	JobDone      JobState = "completed"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
)

// Terminal reports whether the state admits no further transitions.
func (s JobState) Terminal() bool {
	return s == JobDone || s == JobFailed || s == JobCancelled
}

// CanTransition reports whether to is reachable from s in one step.
func (s JobState) CanTransition(to JobState) bool {
	switch s {
	case JobIdle:
		return to == JobRunning
	case JobRunning:
		return to == JobDone || to == JobFailed || to == JobCancelled
	default:
		return false
	}
}

// trackProgress tracks per-track state with transition validation.
type trackProgress struct {
	number int
	state  TrackState
}

func (t *trackProgress) transition(to TrackState) error {
	if !t.state.CanTransition(to) {
		return fmt.Errorf("track %d: illegal transition %s -> %s", t.number, t.state, to)
	}
	t.state = to
	return nil
}
