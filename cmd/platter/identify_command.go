package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"platter/internal/album"
	"platter/internal/disc"
	"platter/internal/disc/discid"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "identify [device]",
		Short: "Identify the inserted disc and show the resolved album",
		Long: `Identify the inserted disc against MusicBrainz and GNUDB, overlaying
on-disc CD-Text where it fills gaps. When every source misses, the album is
shown with placeholder track titles ready for manual editing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			reader := disc.NewReader(device)
			defer reader.Close()

			toc, err := reader.ReadTOC(cmd.Context())
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
			text := readCDText(cmd.Context(), cfg, device, logger)
			resolved := resolver.Resolve(cmd.Context(), fp, toc, text)

			printAlbum(cmd, resolved, fp.MusicBrainz)
			return nil
		},
	}
}

func printAlbum(cmd *cobra.Command, a *album.Album, discID string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Album:   %s\n", orDash(a.Title))
	fmt.Fprintf(out, "Artist:  %s\n", orDash(a.Artist))
	if a.Year > 0 {
		fmt.Fprintf(out, "Year:    %d\n", a.Year)
	} else {
		fmt.Fprintln(out, "Year:    -")
	}
	fmt.Fprintf(out, "Genre:   %s\n", orDash(a.Genre))
	fmt.Fprintf(out, "Source:  %s\n", sourceLabel(a.Source))
	fmt.Fprintf(out, "Disc ID: %s\n", discID)
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(a.Tracks))
	for _, tr := range a.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(tr.Descriptor.Number),
			tr.Title,
			tr.Artist,
			formatTrackDuration(tr.Descriptor.Duration()),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Track", "Title", "Artist", "Length"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
}
