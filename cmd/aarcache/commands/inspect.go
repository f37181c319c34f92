package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/aarcache/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the entries of the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			return c.app.Inspect(cmd.Context(), app.InspectOptions{
				ConfigPath: configPath(cmd),
				JSON:       jsonOut,
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print the entries as JSON")
	return cmd
}
