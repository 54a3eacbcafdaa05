package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent rip jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			jobs, err := store.RecentJobs(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rip jobs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					shortID(job.ID),
					job.StartedAt.Local().Format("2006-01-02 15:04"),
					orDash(job.AlbumArtist),
					orDash(job.AlbumTitle),
					job.Format,
					job.Status,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Started", "Artist", "Album", "Format", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to list")
	cmd.AddCommand(newHistoryShowCommand(ctx))

	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one rip job and its per-track outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			jobID, err := expandJobID(cmd, store, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			job, err := store.GetJob(cmd.Context(), jobID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("no job with ID %s", jobID)
				}
				return fmt.Errorf("load job: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Job:      %s\n", job.ID)
			fmt.Fprintf(out, "Album:    %s\n", orDash(job.AlbumTitle))
			fmt.Fprintf(out, "Artist:   %s\n", orDash(job.AlbumArtist))
			fmt.Fprintf(out, "Format:   %s (%s)\n", job.Format, job.Quality)
			fmt.Fprintf(out, "Output:   %s\n", job.OutputDir)
			fmt.Fprintf(out, "Status:   %s\n", job.Status)
			if job.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
			}
			fmt.Fprintf(out, "Started:  %s\n", job.StartedAt.Local().Format("2006-01-02 15:04:05"))
			if !job.FinishedAt.IsZero() {
				fmt.Fprintf(out, "Finished: %s\n", job.FinishedAt.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(job.Tracks))
			for _, tr := range job.Tracks {
				detail := tr.OutputPath
				if tr.ErrorMessage != "" {
					detail = tr.ErrorMessage
				}
				rows = append(rows, []string{
					strconv.Itoa(tr.Number),
					tr.Title,
					tr.Status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Title", "Status", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// expandJobID resolves a short ID prefix against recent jobs so users can
// paste the truncated IDs the list view prints.
func expandJobID(cmd *cobra.Command, store *history.Store, id string) (string, error) {
	if len(id) >= 36 {
		return id, nil
	}
	jobs, err := store.RecentJobs(cmd.Context(), 200)
	if err != nil {
		return "", fmt.Errorf("list jobs: %w", err)
	}
	var match string
	for _, job := range jobs {
		if strings.HasPrefix(job.ID, id) {
			if match != "" {
				return "", fmt.Errorf("job ID prefix %q is ambiguous", id)
			}
			match = job.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no job with ID %s", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
