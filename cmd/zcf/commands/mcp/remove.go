package mcp

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Remove MCP servers",
	Long:    `Remove MCP servers from the selected tool. A server that is not configured is an error.`,
	Example: `  zcf mcp remove github --tool gemini`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		for _, name := range args {
			if err := reg.Remove(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed MCP server %s\n", green("✓"), name)
		}
		return nil
	},
}
