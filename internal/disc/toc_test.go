package disc

import (
	"errors"
	"testing"
	"time"
)

func testTOC() *TOC {
	return &TOC{
		Tracks: []TrackDescriptor{
			{Number: 1, StartSector: 0, LengthSectors: 18080},
			{Number: 2, StartSector: 18080, LengthSectors: 24328},
			{Number: 3, StartSector: 42408, LengthSectors: 15033},
		},
		LeadOutSector: 57441,
	}
}

func TestTOCValidateAccepts(t *testing.T) {
	if err := testTOC().Validate(); err != nil {
		t.Fatalf("valid TOC rejected: %v", err)
	}
}

func TestTOCValidateRejects(t *testing.T) {
	cases := map[string]func(*TOC){
		"no tracks":       func(toc *TOC) { toc.Tracks = nil },
		"bad numbering":   func(toc *TOC) { toc.Tracks[1].Number = 5 },
		"overlap":         func(toc *TOC) { toc.Tracks[1].StartSector = 100 },
		"zero length":     func(toc *TOC) { toc.Tracks[2].LengthSectors = 0 },
		"early lead-out":  func(toc *TOC) { toc.LeadOutSector = 50000 },
		"negative length": func(toc *TOC) { toc.Tracks[0].LengthSectors = -1 },
	}
	for name, mutate := range cases {
		toc := testTOC()
		mutate(toc)
		if err := toc.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestTrackDescriptorDuration(t *testing.T) {
	d := TrackDescriptor{LengthSectors: 75 * 30}
	if got := d.Duration(); got != 30*time.Second {
		t.Errorf("Duration = %v, want 30s", got)
	}
}

func TestOffsetFrames(t *testing.T) {
	d := TrackDescriptor{StartSector: 18080}
	if got := d.OffsetFrames(); got != 18230 {
		t.Errorf("OffsetFrames = %d, want 18230", got)
	}
}

func TestErrorKinds(t *testing.T) {
	err := NewError(NoDisc, nil)
	if !IsNoDisc(err) {
		t.Error("IsNoDisc should report true")
	}
	wrapped := errors.New("outer: " + err.Error())
	if IsNoDisc(wrapped) {
		t.Error("plain string wrapping should not match")
	}
	if IsNoDisc(NewError(IoError, nil)) {
		t.Error("IoError must not report as NoDisc")
	}
}
