package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ptask/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run manifest tasks (all of them when none are named)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, _ := cmd.Flags().GetString("file")
			useTUI, _ := cmd.Flags().GetBool("tui")
			c.app.WithOutput(cmd.OutOrStdout())
			return c.app.Run(cmd.Context(), app.RunOptions{
				Manifest: manifest,
				Names:    args,
				TUI:      useTUI,
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "Path to the task manifest, or a directory to search upward from")
	return cmd
}
