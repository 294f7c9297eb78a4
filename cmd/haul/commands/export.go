package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/haul/internal/core/domain"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <name[=version|=label]>",
		Short: "Copy a cached artifact out to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("output")
			env, _ := cmd.Flags().GetString("env")

			return c.app.Export(cmd.Context(), args[0], outDir, env)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory to export into (defaults to the working directory)")
	cmd.Flags().String("env", domain.GlobalEnvironment, "Artifact environment to fetch from")
	return cmd
}
