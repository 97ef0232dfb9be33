package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacentio/dbkit/config"
	"github.com/jacentio/dbkit/internal/cli/output"
)

func newStoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List configured stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, _, err := openRegistry(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer reg.Close()

			table := output.NewTableData("Name", "Type", "Pool Size")
			for _, info := range config.Describe(reg, cfg) {
				pool := "default"
				if info.PoolSize > 0 {
					pool = strconv.Itoa(info.PoolSize)
				}
				table.AddRow(info.Name, string(info.Type), pool)
			}
			output.PrintTable(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
