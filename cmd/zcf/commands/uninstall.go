package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli/prompt"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/tool"
)

var (
	uninstallYes   bool
	uninstallLocal bool
)

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "do not ask for confirmation")
	uninstallCmd.Flags().BoolVar(&uninstallLocal, "local", false,
		"also remove Claude Code's local installation (~/.claude/local)")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall a tool's CLI",
	Long: `Uninstall the CLI of the selected tool.

The removal method is the one recorded at install time. Without a record,
zcf asks Homebrew whether it owns the tool and otherwise uses npm. Tools
installed with curl or PowerShell are removed by deleting the binary.

Settings are left in place; use zcf purge to remove them too.`,
	Example: `  # Uninstall Codex without a confirmation prompt
  zcf uninstall --tool codex --yes

  See Also: zcf purge, zcf install`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	t, err := flags.Tool()
	if err != nil {
		return err
	}
	info := tool.MustInfo(t)
	w := cmd.OutOrStdout()

	if !uninstallYes {
		ok, err := prompt.New().Confirm(fmt.Sprintf("Uninstall %s?", info.DisplayName), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Uninstall cancelled")
			return nil
		}
	}

	exec := flags.App().Executor()
	out, err := exec.Uninstall(cmd.Context(), t)
	if err != nil {
		if errors.Is(err, install.ErrBinaryNotFound) {
			return errors.NewUserError(err, fmt.Sprintf("%s does not seem to be installed", info.DisplayName))
		}
		return err
	}
	fmt.Fprintf(w, "%s Uninstalled %s (%s, from %s)\n", green("✓"), info.DisplayName, out.Method, out.Source)
	if out.Binary != "" {
		fmt.Fprintf(w, "  removed %s\n", out.Binary)
	}

	if uninstallLocal {
		if !info.Local {
			return errors.NewValidationError("local", "%s has no local installation", info.DisplayName)
		}
		if err := exec.RemoveLocalInstall(); err != nil {
			return err
		}
		fmt.Fprintln(w, "  removed local installation")
	}
	return nil
}
