package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"platter/internal/disc"
	"platter/internal/logging"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags ripFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rip every disc inserted into the configured drive",
		Long: `Watch the configured drive and rip each inserted disc automatically.
Discs are ejected when ripping finishes so the drive is ready for the next
one. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			device, err := resolveDevice(cfg, nil)
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			watchCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			monitor := disc.NewMonitor(device, logger)
			for {
				if err := monitor.WaitForDisc(watchCtx); err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				if err := runRip(ctx, cmd, cfg, nil, flags); err != nil {
					if watchCtx.Err() != nil {
						return nil
					}
					logger.Error("rip failed", logging.Error(err))
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "Output format (flac, mp3, ogg, opus, wav)")
	cmd.Flags().StringVar(&flags.quality, "quality", "", "Encoding quality (low, medium, high)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output library root")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace existing destination files")
	cmd.Flags().BoolVar(&flags.playlist, "playlist", false, "Write an M3U playlist alongside the tracks")

	return cmd
}
