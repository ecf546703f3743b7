package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-segments/internal/timer"
)

func newTimerCmd(a *app) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "timer [minutes]",
		Short: "Show or set the focus timer duration",
		Long:  fmt.Sprintf("Print the saved timer duration in minutes (default %d), or save a new one.", timer.DefaultMinutes),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case reset:
				if err := timer.Reset(ctx, a.store); err != nil {
					return err
				}
				fmt.Fprintf(out, "Timer duration reset to %d minutes.\n", timer.DefaultMinutes)
			case len(args) == 1:
				m, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid timer duration %q: must be a whole number of minutes", args[0])
				}
				if err := timer.SetDuration(ctx, a.store, m); err != nil {
					return err
				}
				fmt.Fprintf(out, "Timer duration set to %d minutes.\n", m)
			default:
				fmt.Fprintln(out, timer.Duration(ctx, a.store, timer.DefaultMinutes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Restore the default duration")

	return cmd
}
