package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/haul/internal/app"
	"go.trai.ch/haul/internal/core/domain"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Install all manifest dependencies into INPUT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, _ := cmd.Flags().GetBool("core")
			env, _ := cmd.Flags().GetString("env")

			return c.app.Fetch(cmd.Context(), app.FetchOptions{
				CoreOnly:    core,
				Environment: env,
			})
		},
	}
	cmd.Flags().BoolP("core", "c", false, "Skip devDependencies")
	cmd.Flags().String("env", domain.GlobalEnvironment, "Artifact environment to fetch from")
	return cmd
}
