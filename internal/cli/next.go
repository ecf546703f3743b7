package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-segments/internal/segment"
)

func newNextCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next segment with countdown",
		Long: "Print a single line describing the next segment, suitable for status bars.\n\n" +
			"Template fields: .Name, .ShortName, .Current, .Time, .Remaining, .Hours, .Minutes, .Progress",
		Example: "  prayer-segments next --format name-and-remaining\n" +
			"  prayer-segments next --format '{{.Current}} {{printf \"%.0f\" .Progress}}% -> {{.Name}}'",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}

			tgt, err := a.resolveTarget(ctx)
			if err != nil {
				return err
			}

			now := a.now().In(a.loc)
			result, err := a.timings.Segments(ctx, tgt.Query, now)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), segment.Format(result, now, format, a.cfg.GoTimeFormat()))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", segment.FormatFull, "Display format: time-remaining, next-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")

	return cmd
}
