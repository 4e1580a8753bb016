package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"forecast.app/internal/core/favorites"
	"forecast.app/internal/core/location"
	"forecast.app/pkg/errors"
)

func newFavoritesCommand(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite locations",
	}

	c.AddCommand(
		newFavoritesListCommand(opts),
		newFavoritesAddCommand(opts),
		newFavoritesRemoveCommand(opts),
		newFavoritesRefreshCommand(opts),
	)
	return c
}

func newFavoritesListCommand(opts *rootOptions) *cobra.Command {
	var refresh bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List favorites, newest first, with their stored weather",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			favs, err := application.Favorites().List(cmd.Context())
			if err != nil {
				return err
			}
			if !refresh {
				return printJSON(cmd, favs)
			}

			view := application.Orchestrator().Open(cmd.Context())
			defer view.Close()
			view.Refresh(favs)
			view.Wait()

			results := view.Results()
			entries := make([]favorites.Entry, 0, len(favs))
			for _, fav := range favs {
				entries = append(entries, favorites.Entry{Favorite: fav, Weather: results[fav.ID]})
			}
			return printJSON(cmd, entries)
		},
	}

	c.Flags().BoolVar(&refresh, "refresh", false, "fetch current weather for every favorite before printing")
	return c
}

func newFavoritesAddCommand(opts *rootOptions) *cobra.Command {
	var name string
	var lat, lon float64

	c := &cobra.Command{
		Use:   "add",
		Short: "Save a coordinate as a favorite without fetching weather",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			fav, err := application.Favorites().Add(cmd.Context(), name, location.Coordinate{Latitude: lat, Longitude: lon})
			if err != nil {
				return err
			}
			return printJSON(cmd, fav)
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().Float64Var(&lat, "lat", location.UnknownValue, "latitude in decimal degrees")
	c.Flags().Float64Var(&lon, "lon", location.UnknownValue, "longitude in decimal degrees")
	_ = c.MarkFlagRequired("name")
	return c
}

func newFavoritesRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return errors.NewValidationError("favorite id must be a positive integer")
			}

			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			return application.Favorites().Delete(cmd.Context(), uint(id))
		},
	}
}

func newFavoritesRefreshCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch and store current weather for every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			entries, err := application.Orchestrator().RefreshAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		},
	}
}
