package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAgentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent [dir]",
		Short: "Print the package manager detected for the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			agent, err := c.app.DetectAgent(dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), agent.String())
			return nil
		},
	}
}
