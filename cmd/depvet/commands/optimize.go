package commands

import (
	"github.com/spf13/cobra"

	"github.com/depvet/depvet/internal/app"
)

func (c *CLI) newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [dir]",
		Short: "Inject vetted-replacement overrides into the project manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			agent, _ := cmd.Flags().GetString("agent")
			pin, _ := cmd.Flags().GetBool("pin")
			prodOnly, _ := cmd.Flags().GetBool("prod")
			catalogPath, _ := cmd.Flags().GetString("catalog")

			result, err := c.app.Optimize(cmd.Context(), app.OptimizeOptions{
				Dir:         dir,
				Agent:       agent,
				Pin:         pin,
				ProdOnly:    prodOnly,
				CatalogPath: catalogPath,
			})
			if err != nil {
				return err
			}
			c.app.WriteSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringP("agent", "a", "", "Package manager to target instead of auto-detecting (npm, pnpm, yarn-classic, yarn-berry, vlt, bun)")
	cmd.Flags().Bool("pin", false, "Write exact versions instead of caret major ranges")
	cmd.Flags().Bool("prod", false, "Consider only the production dependency tree")
	cmd.Flags().String("catalog", "", "Path to a replacement catalog file (defaults to the embedded catalog)")
	return cmd
}
