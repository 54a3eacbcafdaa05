package rip

import "testing"

func TestTrackStateTransitions(t *testing.T) {
	cases := []struct {
		from, to TrackState
		ok       bool
	}{
		{TrackPending, TrackExtracting, true},
		{TrackExtracting, TrackEncoding, true},
		{TrackEncoding, TrackTagging, true},
		{TrackTagging, TrackCompleted, true},
		{TrackPending, TrackEncoding, false},
		{TrackExtracting, TrackCompleted, false},
		{TrackPending, TrackFailed, true},
		{TrackExtracting, TrackFailed, true},
		{TrackEncoding, TrackFailed, true},
		{TrackTagging, TrackFailed, true},
		{TrackCompleted, TrackFailed, false},
		{TrackFailed, TrackFailed, false},
		{TrackCompleted, TrackExtracting, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestJobStateTransitions(t *testing.T) {
	cases := []struct {
		from, to JobState
		ok       bool
	}{
		{JobIdle, JobRunning, true},
		{JobIdle, JobDone, false},
		{JobRunning, JobDone, true},
		{JobRunning, JobFailed, true},
		{JobRunning, JobCancelled, true},
		{JobDone, JobRunning, false},
		{JobCancelled, JobRunning, false},
		{JobFailed, JobDone, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTrackProgressRejectsIllegalTransition(t *testing.T) {
	p := &trackProgress{number: 1, state: TrackPending}
	if err := p.transition(TrackEncoding); err == nil {
		t.Fatal("expected error for pending -> encoding")
	}
	if err := p.transition(TrackExtracting); err != nil {
		t.Fatalf("pending -> extracting: %v", err)
	}
	if p.state != TrackExtracting {
		t.Errorf("state = %s", p.state)
	}
}
