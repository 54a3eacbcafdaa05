package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = store.Close()
}

func TestJobLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := &JobRecord{
		ID:          "c7f9a7c2-0000-4000-8000-000000000001",
		DiscID:      "ZDiPhVnBWu4wjogok6g2cGpgeNQ-",
		AlbumTitle:  "Brothers in Arms",
		AlbumArtist: "Dire Straits",
		Year:        1985,
		Genre:       "Rock",
		Source:      "musicbrainz",
		Format:      "flac",
		Quality:     "high",
		OutputDir:   "/music/Dire Straits/Brothers in Arms",
		StartedAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.RecordJobStart(ctx, rec); err != nil {
		t.Fatalf("RecordJobStart: %v", err)
	}

	if err := store.RecordTrackResult(ctx, rec.ID, TrackRecord{
		Number: 1, Title: "So Far Away", Status: TrackStatusFailed, ErrorMessage: "read error",
	}); err != nil {
		t.Fatalf("RecordTrackResult: %v", err)
	}
	// Retried tracks overwrite their previous outcome.
	if err := store.RecordTrackResult(ctx, rec.ID, TrackRecord{
		Number: 1, Title: "So Far Away", Status: TrackStatusCompleted, OutputPath: "/music/01 - So Far Away.flac",
	}); err != nil {
		t.Fatalf("RecordTrackResult upsert: %v", err)
	}
	if err := store.RecordTrackResult(ctx, rec.ID, TrackRecord{
		Number: 2, Title: "Money for Nothing", Status: TrackStatusSkipped,
	}); err != nil {
		t.Fatalf("RecordTrackResult: %v", err)
	}

	if err := store.FinishJob(ctx, rec.ID, JobStatusCompleted, ""); err != nil {
		t.Fatalf("FinishJob: %v", err)
	}

	got, err := store.GetJob(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Status != JobStatusCompleted {
		t.Errorf("status = %q", got.Status)
	}
	if got.AlbumTitle != "Brothers in Arms" || got.Year != 1985 {
		t.Errorf("album = %q (%d)", got.AlbumTitle, got.Year)
	}
	if got.FinishedAt.IsZero() {
		t.Error("finished_at not set")
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(got.Tracks))
	}
	if got.Tracks[0].Status != TrackStatusCompleted || got.Tracks[0].OutputPath == "" {
		t.Errorf("track 1 = %+v", got.Tracks[0])
	}
	if got.Tracks[1].Status != TrackStatusSkipped {
		t.Errorf("track 2 = %+v", got.Tracks[1])
	}
}

func TestRecentJobsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"job-old", "job-mid", "job-new"} {
		rec := &JobRecord{
			ID:        id,
			DiscID:    "disc",
			Source:    "manual",
			Format:    "mp3",
			Quality:   "medium",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.RecordJobStart(ctx, rec); err != nil {
			t.Fatalf("RecordJobStart(%s): %v", id, err)
		}
	}

	jobs, err := store.RecentJobs(ctx, 2)
	if err != nil {
		t.Fatalf("RecentJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	if jobs[0].ID != "job-new" || jobs[1].ID != "job-mid" {
		t.Errorf("order = %s, %s", jobs[0].ID, jobs[1].ID)
	}
	if jobs[0].Status != JobStatusRunning {
		t.Errorf("unfinished job status = %q", jobs[0].Status)
	}
}

func TestGetJobUnknown(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetJob(context.Background(), "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
