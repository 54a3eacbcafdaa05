package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"platter/internal/disc"
	"platter/internal/disc/discid"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [device]",
		Short: "Read the disc table of contents and print its fingerprint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			device, err := resolveDevice(cfg, args)
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Device:         %s\n", device)
			fmt.Fprintf(out, "Tracks:         %d\n", toc.TrackCount())
			fmt.Fprintf(out, "Total length:   %s\n", formatTrackDuration(toc.TotalDuration()))
			fmt.Fprintf(out, "MusicBrainz ID: %s\n", fp.MusicBrainz)
			fmt.Fprintf(out, "FreeDB ID:      %s\n", fp.FreeDB)
			fmt.Fprintln(out)

			rows := make([][]string, 0, toc.TrackCount())
			for _, desc := range toc.Tracks {
				rows = append(rows, []string{
					strconv.Itoa(desc.Number),
					strconv.Itoa(desc.StartSector),
					strconv.Itoa(desc.LengthSectors),
					formatTrackDuration(desc.Duration()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Start", "Sectors", "Length"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
