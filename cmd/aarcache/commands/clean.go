package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/aarcache/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputs, _ := cmd.Flags().GetBool("outputs")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath(cmd),
				Outputs:    outputs,
			})
		},
	}

	cmd.Flags().BoolP("outputs", "o", false, "Also remove the exploded archive directories")

	return cmd
}
