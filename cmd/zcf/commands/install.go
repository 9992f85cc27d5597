package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli/prompt"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/tool"
)

var installForce bool

func init() {
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false,
		"install even when the binary is already on PATH")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a tool's CLI",
	Long: `Install the CLI of the selected tool.

zcf lists the install methods available on this platform (npm, Homebrew,
curl, PowerShell, cmd) with the recommended one preselected. When the
chosen method fails you are asked whether to try another one; each
method is tried at most once.

Set install.skip_method_selection in the config to install with npm
without prompting.`,
	Example: `  # Install Claude Code
  zcf install

  # Install Gemini CLI even if a gemini binary is already present
  zcf install --tool gemini --force

  See Also: zcf uninstall, zcf update, zcf status`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	t, err := flags.Tool()
	if err != nil {
		return err
	}
	app := flags.App()
	w := cmd.OutOrStdout()

	if info, ok := app.Probe.WSLInfo(); ok {
		fmt.Fprintf(w, "Detected WSL (%s)\n", info.Distro)
	}

	result, err := app.Session(prompt.New(), installForce).Run(cmd.Context(), t)
	printInstallResult(w, result)
	if err != nil {
		return installError(app.Probe, t, err)
	}
	return nil
}

func printInstallResult(w io.Writer, r install.Result) {
	info := tool.MustInfo(r.Tool)
	switch r.State {
	case install.StateAlreadyInstalled:
		if r.Version != "" {
			fmt.Fprintf(w, "%s %s is already installed\n", info.DisplayName, r.Version)
		} else {
			fmt.Fprintf(w, "%s is already installed\n", info.DisplayName)
		}
		fmt.Fprintln(w, "  Use --force to reinstall")
	case install.StateCancelled:
		fmt.Fprintln(w, "Installation cancelled")
	case install.StateDoneSuccess:
		last := r.Attempts[len(r.Attempts)-1].Report
		if last.FellBack {
			fmt.Fprintf(w, "%s does not support %s, used %s instead\n", info.DisplayName, last.Requested, last.Method)
		}
		fmt.Fprintf(w, "%s Installed %s with %s\n", green("✓"), info.DisplayName, last.Method)
	}
}

// installError adds an actionable suggestion to a failed install.
func installError(p *probe.Probe, t tool.Tool, err error) error {
	if !errors.Is(err, install.ErrInstallFailed) {
		return err
	}
	if p.IsRestrictedShell() {
		return errors.NewSystemError(err,
			fmt.Sprintf("In Termux, run: pkg install nodejs && npm install -g %s (prefix %s)",
				tool.MustInfo(t).NPMPackage, p.TermuxPrefix()))
	}
	return errors.NewSystemError(err, "Run with -v for the installer output")
}
