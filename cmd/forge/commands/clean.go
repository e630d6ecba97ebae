package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [modules...]",
		Short: "Remove intermediate build files of a platform",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, _ := cmd.Flags().GetString("platform")
			configuration, _ := cmd.Flags().GetString("configuration")
			dir, _ := cmd.Flags().GetString("dir")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Dir:           dir,
				Platform:      platform,
				Configuration: configuration,
				Modules:       args,
			})
		},
	}

	cmd.Flags().StringP("platform", "p", "", "Target platform (default: the host's desktop platform)")
	cmd.Flags().StringP("configuration", "c", "", "Only clean this configuration")

	return cmd
}
