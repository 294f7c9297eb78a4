package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/haul/internal/app"
	"go.trai.ch/haul/internal/core/domain"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <name[=version|=label]>...",
		Short: "Install specific components into INPUT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			saveDev, _ := cmd.Flags().GetBool("save-dev")
			env, _ := cmd.Flags().GetString("env")

			return c.app.Update(cmd.Context(), args, app.UpdateOptions{
				Save:        save,
				SaveDev:     saveDev,
				Environment: env,
			})
		},
	}
	cmd.Flags().BoolP("save", "S", false, "Record installed versions in dependencies")
	cmd.Flags().BoolP("save-dev", "D", false, "Record installed versions in devDependencies")
	cmd.Flags().String("env", domain.GlobalEnvironment, "Artifact environment to fetch from")
	return cmd
}
