package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/haul/internal/core/domain"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that installed dependencies match the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, _ := cmd.Flags().GetString("env")

			return c.app.Verify(cmd.Context(), env)
		},
	}
	cmd.Flags().String("env", domain.GlobalEnvironment, "Environment the dependencies must belong to")
	return cmd
}
