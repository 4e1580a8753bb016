package cmd

import (
	"github.com/spf13/cobra"
)

func newCacheCommand(opts *rootOptions) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached place lookups",
	}

	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached place lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			if err := application.ClearCache(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"status": "cleared"})
		},
	})

	return cache
}
