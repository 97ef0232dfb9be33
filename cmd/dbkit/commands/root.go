// Package commands implements the dbkit CLI.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacentio/dbkit/config"
	"github.com/jacentio/dbkit/registry"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"

	cfgFile string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbkit",
		Short: "Inspect the data stores defined in a dbkit configuration",
		Long: `dbkit loads a store configuration, opens every store through the typed
registry and reports on them.

Use "dbkit [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/dbkit/config.yaml)")

	cmd.AddCommand(newStoresCmd())
	cmd.AddCommand(newPingCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openRegistry loads the configuration and builds the registry. Logs go to
// the command's stderr.
func openRegistry(ctx context.Context, errOut io.Writer) (*config.Config, *registry.Registry, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := config.NewLogger(cfg.Logging, errOut)

	reg, err := config.Build(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, reg, logger, nil
}
