package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = config.DefaultPath()
			}

			if overwrite {
				if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("remove existing config: %w", err)
				}
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point output_dir at your music library before ripping.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output directory:  %s\n", cfg.Paths.OutputDir)
			fmt.Fprintf(out, "Log directory:     %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "History database:  %s\n", cfg.Paths.HistoryDB)
			fmt.Fprintf(out, "Drive device:      %s\n", cfg.Drive.Device)
			fmt.Fprintf(out, "Eject after rip:   %s\n", yesNo(cfg.Drive.EjectAfterRip))
			fmt.Fprintf(out, "Read CD-Text:      %s\n", yesNo(cfg.Drive.ReadCDText))
			fmt.Fprintf(out, "Format:            %s\n", cfg.Encoding.Format)
			fmt.Fprintf(out, "Quality:           %s\n", cfg.Encoding.Quality)
			fmt.Fprintf(out, "Overwrite:         %s\n", yesNo(cfg.Encoding.Overwrite))
			fmt.Fprintf(out, "Playlist:          %s\n", yesNo(cfg.Encoding.Playlist))
			fmt.Fprintf(out, "MusicBrainz URL:   %s\n", cfg.Metadata.MusicBrainzURL)
			fmt.Fprintf(out, "GNUDB URL:         %s\n", cfg.Metadata.GnudbURL)
			if cfg.Notifications.NtfyTopic != "" {
				fmt.Fprintf(out, "Ntfy topic:        %s\n", cfg.Notifications.NtfyTopic)
			} else {
				fmt.Fprintln(out, "Ntfy topic:        (notifications disabled)")
			}
			return nil
		},
	}
}
