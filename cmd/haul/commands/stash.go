package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stash <label>",
		Short: "Snapshot the current OUTPUT build under a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Stash(cmd.Context(), args[0])
		},
	}
}
