package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dpup/terrain-profile/internal/lib/geo"
)

func distanceCmd() *cobra.Command {
	var lat1, lon1, lat2, lon2 float64

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Great-circle distance between two points in meters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			distance, err := geo.PointToPoint(
				geo.Point{Latitude: lat1, Longitude: lon1},
				geo.Point{Latitude: lat2, Longitude: lon2},
			)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s m\n",
				humanize.FormatFloat("#,###.###", distance))
			return err
		},
	}

	cmd.Flags().Float64Var(&lat1, "lat1", 0, "latitude of the first point")
	cmd.Flags().Float64Var(&lon1, "lon1", 0, "longitude of the first point")
	cmd.Flags().Float64Var(&lat2, "lat2", 0, "latitude of the second point")
	cmd.Flags().Float64Var(&lon2, "lon2", 0, "longitude of the second point")
	for _, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
