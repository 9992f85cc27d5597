package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/tool"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a tool's CLI",
	Long: `Update the CLI of the selected tool with the method that installed it:
brew upgrade, npm update -g, or the native self-updater of Claude Code.`,
	Example: `  zcf update --tool gemini

  See Also: zcf status`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := flags.Tool()
		if err != nil {
			return err
		}
		exec := flags.App().Executor()
		report, err := exec.Update(cmd.Context(), t)
		if err != nil {
			return err
		}

		info := tool.MustInfo(t)
		w := cmd.OutOrStdout()
		if v, ok := exec.DetectVersion(cmd.Context(), t); ok {
			fmt.Fprintf(w, "%s Updated %s to %s (%s)\n", green("✓"), info.DisplayName, v, report.Method)
			return nil
		}
		fmt.Fprintf(w, "%s Updated %s (%s)\n", green("✓"), info.DisplayName, report.Method)
		return nil
	},
}
