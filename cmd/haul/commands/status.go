package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/haul/internal/core/domain"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the dependency tree of the current component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, _ := cmd.Flags().GetString("env")
			output, _ := cmd.Flags().GetString("output")

			return c.app.Status(cmd.Context(), env, output)
		},
	}
	cmd.Flags().String("env", domain.GlobalEnvironment, "Environment the tree is evaluated against")
	cmd.Flags().String("output", "auto", "Output mode: auto, color or plain")
	return cmd
}
