package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/aarcache/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Explode the configured archives, reusing cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant, _ := cmd.Flags().GetString("variant")
			strict, _ := cmd.Flags().GetBool("strict")
			jsonOut, _ := cmd.Flags().GetBool("json")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath(cmd),
				Variant:    variant,
				Strict:     strict,
				JSON:       jsonOut,
			})
		},
	}
	cmd.Flags().String("variant", "", "Override the configured variant: app or module")
	cmd.Flags().Bool("strict", false, "Only reuse cached results whose artifacts all still exist")
	cmd.Flags().Bool("json", false, "Print the resulting library records as JSON")
	return cmd
}
