package mcp

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/mcp"
)

func init() {
	presetsCmd.AddCommand(presetsInstallCmd)
	Cmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List MCP server presets",
	Long: `List the ready-made MCP server definitions. Install them with
zcf mcp presets install.`,
	Example: `  zcf mcp presets`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDESCRIPTION\tREQUIRES")
		for _, p := range mcp.Presets() {
			req := "-"
			if len(p.RequiredEnv) > 0 {
				req = strings.Join(p.RequiredEnv, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", cyan(p.Name), p.Description, req)
		}
		return tw.Flush()
	},
}

var presetsInstallCmd = &cobra.Command{
	Use:   "install <preset>...",
	Short: "Install MCP server presets",
	Long: `Add the named presets to the selected tool in one write. Unknown
names are reported and the known ones are still installed.`,
	Example: `  zcf mcp presets install github filesystem --tool gemini`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		installed, unknown, err := reg.InstallPresets(args)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, name := range installed {
			fmt.Fprintf(w, "%s Installed %s\n", green("✓"), name)
			if p, ok := mcp.LookupPreset(name); ok && len(p.RequiredEnv) > 0 {
				fmt.Fprintf(w, "  export %s before starting the tool\n", strings.Join(p.RequiredEnv, ", "))
			}
		}
		if len(unknown) > 0 {
			return errors.NewUserError(
				errors.Newf("unknown preset(s): %s", strings.Join(unknown, ", ")),
				"Run: zcf mcp presets")
		}
		return nil
	},
}
