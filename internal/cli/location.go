package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-segments/internal/geo"
)

func newLocationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Show or change the saved location",
		Long: "Show the location used for timings and where it came from.\n" +
			"Without configured coordinates or city, the saved location is used; if none is\n" +
			"saved it is detected from your IP address and saved, falling back to Toronto.",
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

			out := cmd.OutOrStdout()
			if a.flags.JSON {
				data, err := json.MarshalIndent(struct {
					Source string `json:"source"`
					Key    string `json:"key"`
				}{tgt.Source, tgt.Query.Key()}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintln(out, tgt.describe())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "set <latitude> <longitude>",
		Short:   "Save a location",
		Long:    "Save coordinates as the location. Use -- before negative values.",
		Example: "  prayer-segments location set -- 43.6532 -79.3832",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: must be a number", args[0])
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: must be a number", args[1])
			}

			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			c := geo.Coordinates{Latitude: lat, Longitude: lon}
			if err := a.resolver.Save(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved location %s\n", c.Key())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the saved location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.open(ctx); err != nil {
				return err
			}
			if err := a.resolver.ClearSaved(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved location cleared.")
			return nil
		},
	})

	return cmd
}
