package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a manifest for a new component in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			return c.app.Init(cmd.Context(), force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing manifest")
	return cmd
}
