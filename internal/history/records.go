package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Job status values recorded in the history database.
const (
	JobStatusRunning            = "running"
	JobStatusCompleted          = "completed"
	JobStatusCompletedWithFails = "completed_with_errors"
	JobStatusFailed             = "failed"
	JobStatusCancelled          = "cancelled"
)

// Track status values recorded in the history database.
const (
	TrackStatusCompleted = "completed"
	TrackStatusFailed    = "failed"
	TrackStatusSkipped   = "skipped"
)

// JobRecord captures one rip job.
type JobRecord struct {
	ID           string
	DiscID       string
	AlbumTitle   string
	AlbumArtist  string
	Year         int
	Genre        string
	Source       string
	Format       string
	Quality      string
	OutputDir    string
	Status       string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
	Tracks       []TrackRecord
}

// TrackRecord captures the outcome of one track within a job.
type TrackRecord struct {
	Number       int
	Title        string
	Status       string
	OutputPath   string
	ErrorMessage string
}

// RecordJobStart inserts a new running job.
func (s *Store) RecordJobStart(ctx context.Context, rec *JobRecord) error {
	started := rec.StartedAt
	if started.IsZero() {
		started = time.Now().UTC()
	}
	err := s.execWithRetry(
		ctx,
		`INSERT INTO jobs (
            id, disc_id, album_title, album_artist, year, genre, source,
            format, quality, output_dir, status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.DiscID,
		rec.AlbumTitle,
		rec.AlbumArtist,
		rec.Year,
		rec.Genre,
		rec.Source,
		rec.Format,
		rec.Quality,
		rec.OutputDir,
		JobStatusRunning,
		started.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// RecordTrackResult upserts the outcome of one track.
func (s *Store) RecordTrackResult(ctx context.Context, jobID string, track TrackRecord) error {
	err := s.execWithRetry(
		ctx,
		`INSERT INTO job_tracks (job_id, track_number, title, status, output_path, error)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (job_id, track_number) DO UPDATE SET
            title = excluded.title,
            status = excluded.status,
            output_path = excluded.output_path,
            error = excluded.error`,
		jobID,
		track.Number,
		track.Title,
		track.Status,
		nullableString(track.OutputPath),
		nullableString(track.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("record track result: %w", err)
	}
	return nil
}

// FinishJob marks a job terminal with the given status.
func (s *Store) FinishJob(ctx context.Context, jobID, status, errorMessage string) error {
	err := s.execWithRetry(
		ctx,
		`UPDATE jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status,
		nullableString(errorMessage),
		time.Now().UTC().Format(time.RFC3339Nano),
		jobID,
	)
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	return nil
}

// RecentJobs returns the most recent jobs, newest first, without track
// detail.
func (s *Store) RecentJobs(ctx context.Context, limit int) ([]JobRecord, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, disc_id, album_title, album_artist, year, genre, source,
                format, quality, output_dir, status, error, started_at, finished_at
         FROM jobs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var records []JobRecord
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return records, nil
}

// GetJob returns one job with its track outcomes; sql.ErrNoRows when the
// job is unknown.
func (s *Store) GetJob(ctx context.Context, jobID string) (*JobRecord, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, disc_id, album_title, album_artist, year, genre, source,
                format, quality, output_dir, status, error, started_at, finished_at
         FROM jobs WHERE id = ?`,
		jobID,
	)
	rec, err := scanJob(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT track_number, title, status, output_path, error
         FROM job_tracks WHERE job_id = ? ORDER BY track_number`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("query job tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			track      TrackRecord
			outputPath sql.NullString
			trackErr   sql.NullString
		)
		if err := rows.Scan(&track.Number, &track.Title, &track.Status, &outputPath, &trackErr); err != nil {
			return nil, fmt.Errorf("scan job track: %w", err)
		}
		track.OutputPath = outputPath.String
		track.ErrorMessage = trackErr.String
		rec.Tracks = append(rec.Tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job tracks: %w", err)
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (JobRecord, error) {
	var (
		rec        JobRecord
		jobErr     sql.NullString
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(
		&rec.ID,
		&rec.DiscID,
		&rec.AlbumTitle,
		&rec.AlbumArtist,
		&rec.Year,
		&rec.Genre,
		&rec.Source,
		&rec.Format,
		&rec.Quality,
		&rec.OutputDir,
		&rec.Status,
		&jobErr,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return JobRecord{}, err
	}
	rec.ErrorMessage = jobErr.String
	rec.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		rec.FinishedAt = parseTimestamp(finishedAt.String)
	}
	return rec, nil
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
