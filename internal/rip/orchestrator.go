package rip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rabidaudio/audiocd"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/encoding"
	"platter/internal/history"
	"platter/internal/logging"
	"platter/internal/notifications"
	"platter/internal/services"
)

// Orchestrator runs rip jobs against one drive.
type Orchestrator struct {
	reader   disc.Reader
	encoder  encoding.Encoder
	notifier notifications.Service
	store    *history.Store
	logger   *slog.Logger
}

// OrchestratorOption configures optional collaborators.
type OrchestratorOption func(*Orchestrator)

// WithHistory records job and track outcomes in the history store.
func WithHistory(store *history.Store) OrchestratorOption {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithNotifier sends the single end-of-job notification through svc.
func WithNotifier(svc notifications.Service) OrchestratorOption {
	return func(o *Orchestrator) {
		o.notifier = svc
	}
}

// NewOrchestrator builds an orchestrator over a drive reader and an
// encoder.
func NewOrchestrator(logger *slog.Logger, reader disc.Reader, encoder encoding.Encoder, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		reader:  reader,
		encoder: encoder,
		logger:  logging.NewComponentLogger(logger, "rip"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start launches the job and returns its event stream. The stream carries
// every track event followed by exactly one terminal job event, then
// closes. The caller must consume the stream until it closes; editing of
// the underlying album session may resume only after that.
func (o *Orchestrator) Start(ctx context.Context, job *Job) (<-chan Event, error) {
	if err := job.Validate(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "rip", "start job", "", err)
	}
	events := make(chan Event)
	go o.run(ctx, job, events)
	return events, nil
}

func (o *Orchestrator) run(ctx context.Context, job *Job, events chan<- Event) {
	defer close(events)
	started := time.Now()

	o.recordJobStart(job)
	o.logger.Info("job started",
		logging.String("job_id", job.ID),
		logging.String("album", job.Album.Title),
		logging.Int("selected_tracks", len(job.Album.SelectedTracks())),
	)

	albumDir := AlbumDir(job.OutputRoot, job.Album)
	if err := os.MkdirAll(albumDir, 0o755); err != nil {
		o.failJob(job, events, fmt.Errorf("create album directory: %w", err))
		return
	}

	var completed []PlaylistEntry
	failedTracks := 0

	for _, tr := range job.Album.Tracks {
		if !tr.Selected {
			o.recordTrack(job, tr, history.TrackStatusSkipped, "", nil)
			continue
		}
		if ctx.Err() != nil {
			o.cancelJob(job, events)
			return
		}

		dest := filepath.Join(albumDir, TrackFileName(tr, job.Format))
		path, err := o.ripTrack(ctx, job, tr, dest, events)
		if err != nil {
			if ctx.Err() != nil {
				o.cancelJob(job, events)
				return
			}
			if disc.IsNoDisc(err) {
				events <- Event{Type: EventTrackFailed, Track: tr.Descriptor.Number, Err: err}
				o.recordTrack(job, tr, history.TrackStatusFailed, "", err)
				o.failJob(job, events, err)
				return
			}
			o.logger.Warn("track failed",
				logging.String("job_id", job.ID),
				logging.Int("track", tr.Descriptor.Number),
				logging.Error(err),
			)
			events <- Event{Type: EventTrackFailed, Track: tr.Descriptor.Number, Err: err}
			o.recordTrack(job, tr, history.TrackStatusFailed, "", err)
			failedTracks++
			continue
		}

		events <- Event{Type: EventTrackCompleted, Track: tr.Descriptor.Number, Path: path}
		o.recordTrack(job, tr, history.TrackStatusCompleted, path, nil)
		completed = append(completed, PlaylistEntry{Track: tr, Path: path})
	}

	if job.Playlist && len(completed) > 0 {
		playlistPath := filepath.Join(albumDir, PlaylistFileName(job.Album))
		if err := WritePlaylist(playlistPath, job.Album, completed); err != nil {
			o.logger.Warn("playlist write failed", logging.String("job_id", job.ID), logging.Error(err))
		}
	}

	status := history.JobStatusCompleted
	if failedTracks > 0 {
		status = history.JobStatusCompletedWithFails
	}
	o.finishJob(job, status, "")
	o.logger.Info("job completed",
		logging.String("job_id", job.ID),
		logging.Int("completed", len(completed)),
		logging.Int("failed", failedTracks),
		logging.Duration("elapsed", time.Since(started)),
	)
	events <- Event{Type: EventJobCompleted}
	if o.notifier != nil {
		if err := o.notifier.NotifyRipCompleted(context.Background(), job.Album.Title, len(completed), failedTracks, time.Since(started)); err != nil {
			o.logger.Warn("completion notification failed", logging.Error(err))
		}
	}
}

// ripTrack runs the per-track pipeline: overwrite check, extraction to a
// temp WAV, encode, tag. The temp WAV is removed on every exit path.
func (o *Orchestrator) ripTrack(ctx context.Context, job *Job, tr album.Track, dest string, events chan<- Event) (string, error) {
	progress := &trackProgress{number: tr.Descriptor.Number, state: TrackPending}
	events <- Event{Type: EventTrackStarted, Track: tr.Descriptor.Number}

	if !job.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%s: %w", dest, ErrAlreadyExists)
		}
	}

	if err := progress.transition(TrackExtracting); err != nil {
		return "", err
	}
	tempWAV, err := o.extract(ctx, tr, filepath.Dir(dest))
	if tempWAV != "" {
		defer os.Remove(tempWAV)
	}
	if err != nil {
		return "", fmt.Errorf("extract track %d: %w", tr.Descriptor.Number, err)
	}
	events <- Event{Type: EventTrackProgress, Track: tr.Descriptor.Number, Fraction: 0.5}

	if err := progress.transition(TrackEncoding); err != nil {
		return "", err
	}
	req := encoding.Request{
		InputPath:  tempWAV,
		OutputPath: dest,
		Format:     job.Format,
		Quality:    tr.Quality,
		Tags:       buildTags(job.Album, tr),
	}
	if err := o.encoder.Encode(ctx, req); err != nil {
		o.discardPartial(dest)
		return "", fmt.Errorf("encode track %d: %w", tr.Descriptor.Number, err)
	}
	events <- Event{Type: EventTrackProgress, Track: tr.Descriptor.Number, Fraction: 0.9}

	if err := progress.transition(TrackTagging); err != nil {
		return "", err
	}
	if err := encoding.Tag(dest, job.Format, req.Tags); err != nil {
		o.discardPartial(dest)
		return "", fmt.Errorf("tag track %d: %w", tr.Descriptor.Number, err)
	}

	if err := progress.transition(TrackCompleted); err != nil {
		return "", err
	}
	return dest, nil
}

func (o *Orchestrator) extract(ctx context.Context, tr album.Track, dir string) (string, error) {
	audio, err := o.reader.TrackAudio(ctx, tr.Descriptor)
	if err != nil {
		return "", err
	}
	defer audio.Close()

	f, err := os.CreateTemp(dir, fmt.Sprintf(".rip-%02d-*.wav", tr.Descriptor.Number))
	if err != nil {
		return "", fmt.Errorf("create temp wav: %w", err)
	}
	size := int64(tr.Descriptor.LengthSectors) * int64(audiocd.BytesPerSector)
	if err := encoding.WriteWAV(f, audio, size); err != nil {
		_ = f.Close()
		return f.Name(), err
	}
	if err := f.Close(); err != nil {
		return f.Name(), fmt.Errorf("close temp wav: %w", err)
	}
	return f.Name(), nil
}

// discardPartial removes a half-written destination. Files the run did not
// create are never touched; the overwrite check runs before any write.
func (o *Orchestrator) discardPartial(dest string) {
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		o.logger.Warn("failed to remove partial output", logging.String("path", dest), logging.Error(err))
	}
}

func (o *Orchestrator) cancelJob(job *Job, events chan<- Event) {
	o.logger.Info("job cancelled", logging.String("job_id", job.ID))
	o.finishJob(job, history.JobStatusCancelled, "")
	events <- Event{Type: EventJobCancelled}
}

func (o *Orchestrator) failJob(job *Job, events chan<- Event, cause error) {
	o.logger.Error("job failed", logging.String("job_id", job.ID), logging.Error(cause))
	o.finishJob(job, history.JobStatusFailed, cause.Error())
	events <- Event{Type: EventJobFailed, Err: cause}
	if o.notifier != nil {
		if err := o.notifier.NotifyRipFailed(context.Background(), job.Album.Title, cause); err != nil {
			o.logger.Warn("failure notification failed", logging.Error(err))
		}
	}
}

func (o *Orchestrator) recordJobStart(job *Job) {
	if o.store == nil {
		return
	}
	rec := &history.JobRecord{
		ID:          job.ID,
		DiscID:      job.DiscID,
		AlbumTitle:  job.Album.Title,
		AlbumArtist: job.Album.Artist,
		Year:        job.Album.Year,
		Genre:       job.Album.Genre,
		Source:      string(job.Album.Source),
		Format:      string(job.Format),
		Quality:     jobQualitySummary(job.Album),
		OutputDir:   AlbumDir(job.OutputRoot, job.Album),
		StartedAt:   time.Now().UTC(),
	}
	if err := o.store.RecordJobStart(context.Background(), rec); err != nil {
		o.logger.Warn("failed to record job start", logging.Error(err))
	}
}

func (o *Orchestrator) recordTrack(job *Job, tr album.Track, status, path string, cause error) {
	if o.store == nil {
		return
	}
	rec := history.TrackRecord{
		Number:     tr.Descriptor.Number,
		Title:      tr.Title,
		Status:     status,
		OutputPath: path,
	}
	if cause != nil {
		rec.ErrorMessage = cause.Error()
	}
	if err := o.store.RecordTrackResult(context.Background(), job.ID, rec); err != nil {
		o.logger.Warn("failed to record track result", logging.Error(err))
	}
}

func (o *Orchestrator) finishJob(job *Job, status, message string) {
	if o.store == nil {
		return
	}
	if err := o.store.FinishJob(context.Background(), job.ID, status, message); err != nil {
		o.logger.Warn("failed to record job finish", logging.Error(err))
	}
}

func buildTags(a *album.Album, tr album.Track) encoding.TagSet {
	return encoding.TagSet{
		Album:       a.Title,
		AlbumArtist: a.Artist,
		Artist:      tr.EffectiveArtist(a.Artist),
		Title:       tr.Title,
		Composer:    tr.Composer,
		Genre:       a.Genre,
		Year:        a.Year,
		TrackNumber: tr.Descriptor.Number,
		TrackTotal:  len(a.Tracks),
	}
}

// jobQualitySummary collapses per-track qualities into one value for the
// history row; mixed selections are recorded as "mixed".
func jobQualitySummary(a *album.Album) string {
	var q encoding.Quality
	for _, tr := range a.Tracks {
		if !tr.Selected {
			continue
		}
		if q == "" {
			q = tr.Quality
			continue
		}
		if tr.Quality != q {
			return "mixed"
		}
	}
	return string(q)
}
