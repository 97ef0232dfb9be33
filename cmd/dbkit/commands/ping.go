package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacentio/dbkit/config"
	"github.com/jacentio/dbkit/internal/cli/output"
)

func newPingCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that every configured store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, logger, err := openRegistry(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer reg.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			failed := 0
			table := output.NewTableData("Name", "Type", "Status")
			for _, h := range config.Ping(ctx, reg, cfg) {
				status := "ok"
				if !h.OK() {
					failed++
					status = h.Err.Error()
					logger.Warn("Store ping failed", "name", h.Name, "type", h.Type, "error", h.Err)
				}
				table.AddRow(h.Name, string(h.Type), status)
			}
			output.PrintTable(cmd.OutOrStdout(), table)

			if failed > 0 {
				return fmt.Errorf("%d of %d stores unreachable", failed, len(cfg.Stores))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall ping timeout")
	return cmd
}
