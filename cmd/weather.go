package cmd

import (
	"github.com/spf13/cobra"

	"forecast.app/internal/core/location"
)

func newWeatherCommand(opts *rootOptions) *cobra.Command {
	var lat, lon float64

	c := &cobra.Command{
		Use:   "weather",
		Short: "Fetch current conditions for a coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			env := application.Weather().FetchCurrent(cmd.Context(), location.Coordinate{Latitude: lat, Longitude: lon})
			if err := printJSON(cmd, env); err != nil {
				return err
			}
			if env.IsFailure() {
				return env.Err()
			}
			return nil
		},
	}

	c.Flags().Float64Var(&lat, "lat", location.UnknownValue, "latitude in decimal degrees")
	c.Flags().Float64Var(&lon, "lon", location.UnknownValue, "longitude in decimal degrees")
	return c
}
