package rip

import (
	"errors"

	"github.com/google/uuid"

	"platter/internal/album"
	"platter/internal/encoding"
)

// Job is the read-only snapshot a rip run consumes. Once built, the album
// inside it no longer changes; editing resumes only after the job reaches
// a terminal state.
type Job struct {
	ID     string
	Album  *album.Album
	DiscID string
	Format encoding.Format
	// OutputRoot is the library root the album directory is created under.
	OutputRoot string
	// Overwrite permits replacing existing destination files.
	Overwrite bool
	// Playlist requests an M3U playlist alongside the tracks.
	Playlist bool
}

// NewJob assigns a fresh job ID to an album snapshot.
func NewJob(a *album.Album, discID string, format encoding.Format, outputRoot string) *Job {
	return &Job{
		ID:         uuid.NewString(),
		Album:      a,
		DiscID:     discID,
		Format:     format,
		OutputRoot: outputRoot,
	}
}

// Validate checks the job is runnable. An empty selection is legal; the
// run simply completes without ripping anything.
func (j *Job) Validate() error {
	if j == nil || j.Album == nil {
		return errors.New("job requires an album snapshot")
	}
	if j.OutputRoot == "" {
		return errors.New("job requires an output root")
	}
	if _, err := encoding.ParseFormat(string(j.Format)); err != nil {
		return err
	}
	return nil
}
