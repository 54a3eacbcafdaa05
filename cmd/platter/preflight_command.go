package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check that the environment is ready for ripping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight checks", colorize) {
				fmt.Fprintln(out, line)
			}

			results := preflight.RunAll(cfg)
			for _, res := range results {
				kind := statusOK
				if !res.Passed {
					kind = statusError
					if res.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
			}
			if !preflight.AllPassed(results) {
				return fmt.Errorf("preflight checks failed")
			}
			return nil
		},
	}
}
