package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest [dir]",
		Short: "Print a merged dependency manifest for the project and its workspaces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			agent, _ := cmd.Flags().GetString("agent")
			outputPath, _ := cmd.Flags().GetString("output")

			var out io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath) //nolint:gosec // user-chosen output path
				if err != nil {
					return zerr.Wrap(err, "failed to create output file")
				}
				defer func() { _ = f.Close() }()
				out = f
			}
			return c.app.ScanManifest(out, dir, agent)
		},
	}
	cmd.Flags().StringP("agent", "a", "", "Package manager to target instead of auto-detecting")
	cmd.Flags().StringP("output", "o", "", "Write the manifest to a file instead of stdout")
	return cmd
}
