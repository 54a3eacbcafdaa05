package discid

import (
	"testing"

	"platter/internal/disc"
)

// tocFromOffsets builds a TOC from absolute frame offsets (lead-in
// included), the form disc ID reference vectors are published in.
func tocFromOffsets(leadOut int, offsets []int) *disc.TOC {
	toc := &disc.TOC{LeadOutSector: leadOut - disc.LeadInSectors}
	for i, off := range offsets {
		end := leadOut
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		toc.Tracks = append(toc.Tracks, disc.TrackDescriptor{
			Number:        i + 1,
			StartSector:   off - disc.LeadInSectors,
			LengthSectors: end - off,
		})
	}
	return toc
}

// Reference disc: 9 tracks, lead-out 186755. The expected MusicBrainz ID
// is the published ID for this TOC.
var referenceOffsets = []int{150, 18230, 42558, 57591, 76417, 89846, 115065, 143250, 164582}

func TestComputeMusicBrainzID(t *testing.T) {
	fp, err := Compute(tocFromOffsets(186755, referenceOffsets))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if fp.MusicBrainz != "ZDiPhVnBWu4wjogok6g2cGpgeNQ-" {
		t.Errorf("MusicBrainz ID = %q, want ZDiPhVnBWu4wjogok6g2cGpgeNQ-", fp.MusicBrainz)
	}
	if fp.TrackCount != 9 {
		t.Errorf("TrackCount = %d, want 9", fp.TrackCount)
	}
}

func TestComputeFreeDBID(t *testing.T) {
	cases := []struct {
		leadOut int
		offsets []int
		want    string
	}{
		{186755, referenceOffsets, "7db80009"},
		{185700, []int{150, 18051, 42248, 57183, 75952, 89333, 114384, 142453, 163641}, "69aa0009"},
	}
	for _, tc := range cases {
		fp, err := Compute(tocFromOffsets(tc.leadOut, tc.offsets))
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if fp.FreeDB != tc.want {
			t.Errorf("FreeDB ID = %q, want %q", fp.FreeDB, tc.want)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	toc := tocFromOffsets(186755, referenceOffsets)
	a, err := Compute(toc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(toc)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("fingerprint not deterministic: %+v vs %+v", a, b)
	}
}

func TestComputeEmptyTOC(t *testing.T) {
	if _, err := Compute(&disc.TOC{}); err == nil {
		t.Fatal("expected error for empty TOC")
	}
	if _, err := Compute(nil); err == nil {
		t.Fatal("expected error for nil TOC")
	}
}
