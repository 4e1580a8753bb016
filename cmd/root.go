// Package cmd holds the forecast command line: the HTTP server plus one-shot
// commands against the same data layer.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forecast.app/internal/app"
	"forecast.app/internal/config"
)

var Version = "dev"

type rootOptions struct {
	offline bool
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "forecast",
		Short: "current weather and favorite locations",
		Long: `
forecast fetches current conditions from OpenWeatherMap, resolves place names
and keeps a local list of favorite locations with their last known weather.
Configuration is read from the environment and an optional .env file.
`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "treat the network as unavailable")

	root.AddCommand(
		newServeCommand(opts),
		newSearchCommand(opts),
		newWeatherCommand(opts),
		newFavoritesCommand(opts),
		newCacheCommand(opts),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure
func Execute(version string) {
	Version = version

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openApplication(opts *rootOptions) (*app.Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return app.NewApplication(cfg, app.Options{Offline: opts.offline})
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
