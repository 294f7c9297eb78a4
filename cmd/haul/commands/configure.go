package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the user configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			return c.app.Configure(cmd.Context(), yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Accept defaults without prompting")
	return cmd
}
