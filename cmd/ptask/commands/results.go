package commands

import "github.com/spf13/cobra"

func (c *CLI) newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results [tasks...]",
		Short: "Print stored task results",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			withOutput, _ := cmd.Flags().GetBool("output")
			return c.app.Results(cmd.OutOrStdout(), args, withOutput)
		},
	}
	cmd.Flags().BoolP("output", "o", false, "Also print each task's stored output")
	return cmd
}
