package disc

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// CDText holds the on-disc text, when the disc carries any. All fields are
// best-effort; a missing field is the empty string.
type CDText struct {
	AlbumTitle  string
	AlbumArtist string
	Genre       string
	Tracks      map[int]CDTextTrack
}

// CDTextTrack is the per-track portion of the on-disc text.
type CDTextTrack struct {
	Title     string
	Performer string
	Composer  string
}

// CDTextReader reads CD-Text from the disc. Absence of CD-Text is not an
// error; implementations return (nil, nil).
type CDTextReader interface {
	ReadCDText(ctx context.Context) (*CDText, error)
}

// cdInfoReader shells out to libcdio's cd-info tool and parses its CD-TEXT
// block. Any tool failure degrades to "no CD-Text".
type cdInfoReader struct {
	binary string
	device string
}

// NewCDTextReader returns a CDTextReader backed by the cd-info binary.
func NewCDTextReader(binary, device string) CDTextReader {
	if strings.TrimSpace(binary) == "" {
		binary = "cd-info"
	}
	return &cdInfoReader{binary: binary, device: device}
}

func (r *cdInfoReader) ReadCDText(ctx context.Context) (*CDText, error) {
	cmd := exec.CommandContext(ctx, r.binary, "--no-header", "--no-device-info", r.device)
	out, err := cmd.Output()
	if err != nil {
		// cd-info missing or the disc has no readable text. Best-effort.
		return nil, nil
	}
	return parseCDInfoText(string(out)), nil
}

var cdTextSectionPattern = regexp.MustCompile(`^CD-TEXT for (Disc|Track\s+(\d+)):`)

// parseCDInfoText extracts the CD-TEXT block from cd-info output. Returns
// nil when no disc-level title is present, matching the convention that a
// disc without a title has no usable CD-Text.
func parseCDInfoText(output string) *CDText {
	text := &CDText{Tracks: map[int]CDTextTrack{}}
	current := 0 // 0 means disc-level
	found := false

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := cdTextSectionPattern.FindStringSubmatch(trimmed); m != nil {
			found = true
			if m[1] == "Disc" {
				current = 0
			} else {
				n, err := strconv.Atoi(m[2])
				if err != nil {
					continue
				}
				current = n
			}
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "TITLE":
			if current == 0 {
				text.AlbumTitle = value
			} else {
				tr := text.Tracks[current]
				tr.Title = value
				text.Tracks[current] = tr
			}
		case "PERFORMER":
			if current == 0 {
				text.AlbumArtist = value
			} else {
				tr := text.Tracks[current]
				tr.Performer = value
				text.Tracks[current] = tr
			}
		case "COMPOSER":
			if current != 0 {
				tr := text.Tracks[current]
				tr.Composer = value
				text.Tracks[current] = tr
			}
		case "GENRE":
			if current == 0 {
				text.Genre = value
			}
		}
	}

	if !found || text.AlbumTitle == "" {
		return nil
	}
	return text
}
