package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/ptask/internal/core/domain"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [--name name] -- <path> [args...]",
		Short: "Run a single ad-hoc task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				name = filepath.Base(args[0])
			}
			useTUI, _ := cmd.Flags().GetBool("tui")
			c.app.WithOutput(cmd.OutOrStdout())
			return c.app.Exec(cmd.Context(), domain.TaskSpec{
				Name:       name,
				Executable: args[0],
				Args:       strings.Join(args[1:], " "),
			}, useTUI)
		},
	}
	cmd.Flags().StringP("name", "n", "", "Task name (defaults to the executable's base name)")
	return cmd
}
