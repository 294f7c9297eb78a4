package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>...",
		Short: "Delete components from INPUT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			saveDev, _ := cmd.Flags().GetBool("save-dev")

			return c.app.Remove(cmd.Context(), args, save, saveDev)
		},
	}
	cmd.Flags().BoolP("save", "S", false, "Drop removed components from dependencies")
	cmd.Flags().BoolP("save-dev", "D", false, "Drop removed components from devDependencies")
	return cmd
}
