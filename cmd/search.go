package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <place>",
		Short: "Resolve a place, fetch its weather and save it as a favorite",
		Example: `  forecast search London
  forecast search "New York"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApplication(opts)
			if err != nil {
				return err
			}
			defer func() { _ = application.Close() }()

			env := application.Favorites().Search(cmd.Context(), strings.Join(args, " "))
			if err := printJSON(cmd, env); err != nil {
				return err
			}
			if env.IsFailure() {
				return env.Err()
			}
			return nil
		},
	}
}
