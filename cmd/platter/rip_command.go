package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"platter/internal/album"
	"platter/internal/config"
	"platter/internal/disc"
	"platter/internal/disc/discid"
	"platter/internal/encoding"
	"platter/internal/history"
	"platter/internal/logging"
	"platter/internal/notifications"
	"platter/internal/preflight"
	"platter/internal/rip"
)

type ripFlags struct {
	format    string
	quality   string
	output    string
	tracks    string
	overwrite bool
	playlist  bool
	noEject   bool
}

func newRipCommand(ctx *commandContext) *cobra.Command {
	var flags ripFlags

	cmd := &cobra.Command{
		Use:   "rip [device]",
		Short: "Rip the inserted disc to the output library",
		Long: `Rip the inserted disc: identify it, extract each selected track, encode
it to the configured format, tag it, and record the outcome in history.
Tracks are processed strictly in disc order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runRip(ctx, cmd, cfg, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format (flac, mp3, ogg, opus, wav)")
	cmd.Flags().StringVar(&flags.quality, "quality", "", "Encoding quality (low, medium, high)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output library root")
	cmd.Flags().StringVar(&flags.tracks, "tracks", "", "Tracks to rip, e.g. 1,3-5 (default all)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace existing destination files")
	cmd.Flags().BoolVar(&flags.playlist, "playlist", false, "Write an M3U playlist alongside the tracks")
	cmd.Flags().BoolVar(&flags.noEject, "no-eject", false, "Keep the disc loaded after ripping")

	return cmd
}

func applyRipFlags(cfg *config.Config, cmd *cobra.Command, flags ripFlags) {
	if flags.format != "" {
		cfg.Encoding.Format = strings.ToLower(strings.TrimSpace(flags.format))
	}
	if flags.quality != "" {
		cfg.Encoding.Quality = strings.ToLower(strings.TrimSpace(flags.quality))
	}
	if flags.output != "" {
		cfg.Paths.OutputDir = flags.output
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Encoding.Overwrite = flags.overwrite
	}
	if cmd.Flags().Changed("playlist") {
		cfg.Encoding.Playlist = flags.playlist
	}
}

func runRip(ctx *commandContext, cmd *cobra.Command, cfg *config.Config, args []string, flags ripFlags) error {
	runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	applyRipFlags(cfg, cmd, flags)

	format, err := encoding.ParseFormat(cfg.Encoding.Format)
	if err != nil {
		return err
	}
	device, err := resolveDevice(cfg, args)
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	results := preflight.RunAll(cfg)
	for _, res := range results {
		if !res.Passed {
			kind := statusError
			if res.Optional {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
		}
	}
	if !preflight.AllPassed(results) {
		return fmt.Errorf("preflight checks failed")
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "platter.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire rip lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another rip is already running")
	}
	defer lock.Unlock()

	reader := disc.NewReader(device)
	defer reader.Close()

	toc, err := reader.ReadTOC(runCtx)
	if err != nil {
		return fmt.Errorf("read table of contents: %w", err)
	}
	fp, err := discid.Compute(toc)
	if err != nil {
		return fmt.Errorf("compute disc ID: %w", err)
	}

	resolver, err := newResolver(cfg, logger)
	if err != nil {
		return err
	}
	text := readCDText(runCtx, cfg, device, logger)
	resolved := resolver.Resolve(runCtx, fp, toc, text)

	printAlbum(cmd, resolved, fp.MusicBrainz)

	session := album.NewSession(resolved)
	if flags.tracks != "" {
		if err := applyTrackSelection(session, flags.tracks, toc.TrackCount()); err != nil {
			return err
		}
	}
	snapshot, err := session.Snapshot()
	if err != nil {
		return err
	}
	defer session.Release()

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	notifier := notifications.NewService(cfg)
	encoder := encoding.NewFFmpeg(encoding.WithBinary(cfg.Encoding.FFmpegBinary))

	job := rip.NewJob(snapshot, fp.MusicBrainz, format, cfg.Paths.OutputDir)
	job.Overwrite = cfg.Encoding.Overwrite
	job.Playlist = cfg.Encoding.Playlist

	orch := rip.NewOrchestrator(logger, reader, encoder,
		rip.WithHistory(store),
		rip.WithNotifier(notifier),
	)

	if err := notifier.NotifyRipStarted(runCtx, snapshot.Title, len(snapshot.SelectedTracks())); err != nil {
		logger.Warn("start notification failed", logging.Error(err))
	}

	events, err := orch.Start(runCtx, job)
	if err != nil {
		return err
	}
	outcome := consumeEvents(runCtx, cmd, events, snapshot.Tracks, colorize)

	if cfg.Drive.EjectAfterRip && !flags.noEject && runCtx.Err() == nil {
		if err := disc.NewEjector().Eject(runCtx, device); err != nil {
			logger.Warn("eject failed", logging.String("device", device), logging.Error(err))
		}
	}
	return outcome
}

// consumeEvents drains the job's event stream, rendering one line per
// track outcome. The returned error reflects the job's terminal event.
func consumeEvents(runCtx context.Context, cmd *cobra.Command, events <-chan rip.Event, tracks []album.Track, colorize bool) error {
	out := cmd.OutOrStdout()
	titles := make(map[int]string, len(tracks))
	for _, tr := range tracks {
		titles[tr.Descriptor.Number] = tr.Title
	}

	var completed, failed int
	var terminal error
	for ev := range events {
		switch ev.Type {
		case rip.EventTrackStarted:
			fmt.Fprintf(out, "Track %02d: %s\n", ev.Track, titles[ev.Track])
		case rip.EventTrackProgress:
			// Stage transitions only; no progress bar.
		case rip.EventTrackCompleted:
			completed++
			fmt.Fprintln(out, renderStatusLine(fmt.Sprintf("Track %02d", ev.Track), statusOK, ev.Path, colorize))
		case rip.EventTrackFailed:
			failed++
			fmt.Fprintln(out, renderStatusLine(fmt.Sprintf("Track %02d", ev.Track), statusError, ev.Err.Error(), colorize))
		case rip.EventJobCompleted:
			kind := statusOK
			if failed > 0 {
				kind = statusWarn
			}
			summary := fmt.Sprintf("%d completed, %d failed", completed, failed)
			fmt.Fprintln(out, renderStatusLine("Job", kind, summary, colorize))
			if failed > 0 {
				terminal = fmt.Errorf("%d track(s) failed", failed)
			}
		case rip.EventJobFailed:
			fmt.Fprintln(out, renderStatusLine("Job", statusError, ev.Err.Error(), colorize))
			terminal = ev.Err
		case rip.EventJobCancelled:
			fmt.Fprintln(out, renderStatusLine("Job", statusWarn, "cancelled", colorize))
			terminal = runCtx.Err()
		}
	}
	return terminal
}

func applyTrackSelection(session *album.Session, spec string, trackCount int) error {
	selected, err := parseTrackSelection(spec, trackCount)
	if err != nil {
		return err
	}
	for number := 1; number <= trackCount; number++ {
		if err := session.SetTrackSelected(number, selected[number]); err != nil {
			return err
		}
	}
	return nil
}

// parseTrackSelection parses a comma-separated list of track numbers and
// inclusive ranges, e.g. "1,3-5,9".
func parseTrackSelection(spec string, trackCount int) (map[int]bool, error) {
	selected := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		low, high := part, part
		if idx := strings.Index(part, "-"); idx >= 0 {
			low, high = strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+1:])
		}
		start, err := strconv.Atoi(low)
		if err != nil {
			return nil, fmt.Errorf("invalid track selection %q", part)
		}
		end, err := strconv.Atoi(high)
		if err != nil {
			return nil, fmt.Errorf("invalid track selection %q", part)
		}
		if start > end || start < 1 || end > trackCount {
			return nil, fmt.Errorf("track selection %q is out of range 1-%d", part, trackCount)
		}
		for number := start; number <= end; number++ {
			selected[number] = true
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("track selection %q names no tracks", spec)
	}
	return selected, nil
}
