package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli/prompt"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/tool"
)

var (
	purgeBackup     bool
	purgeYes        bool
	purgeComponents []string
)

func init() {
	purgeCmd.Flags().BoolVar(&purgeBackup, "backup", true, "back up settings, context and auth files first")
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "do not ask for confirmation")
	purgeCmd.Flags().StringSliceVarP(&purgeComponents, "component", "c", nil,
		"only remove these components (cli, settings, context, auth, cache, checkpoints)")
	rootCmd.AddCommand(purgeCmd)
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove a tool and everything it wrote",
	Long: `Uninstall the selected tool's CLI and delete its settings, context file
(CLAUDE.md, AGENTS.md or GEMINI.md), Codex credentials and Gemini's cache
and checkpoints.

A backup of the settings, context and auth files is taken first unless
--backup=false is given; if the backup fails nothing is removed. The CLI
is skipped when its binary is not on PATH. The tool's directory is
removed when it is left empty.`,
	Example: `  # Remove Gemini CLI completely
  zcf purge --tool gemini

  # Only drop Gemini's cache and checkpoints
  zcf purge --tool gemini -c cache,checkpoints --yes

  See Also: zcf uninstall, zcf backup restore`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, _ []string) error {
	t, err := flags.Tool()
	if err != nil {
		return err
	}
	components, err := parseComponents(t, purgeComponents)
	if err != nil {
		return err
	}
	info := tool.MustInfo(t)
	w := cmd.OutOrStdout()

	if !purgeYes {
		ok, err := prompt.New().Confirm(fmt.Sprintf("Remove %s and its configuration?", info.DisplayName), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Purge cancelled")
			return nil
		}
	}

	app := flags.App()
	report, err := app.Purger().Purge(cmd.Context(), t, app.PurgeOptions(t, install.PurgeOptions{
		Components: components,
		Backup:     purgeBackup,
	}))
	if err != nil {
		return err
	}
	printPurgeReport(w, info, report)
	if !report.Succeeded() {
		return errors.NewSystemError(
			errors.Newf("could not remove %s", joinComponents(report.Failed)),
			"Run with -v for details")
	}
	return nil
}

func parseComponents(t tool.Tool, names []string) ([]install.Component, error) {
	valid := install.Components(t)
	out := make([]install.Component, 0, len(names))
	for _, n := range names {
		c := install.Component(strings.TrimSpace(n))
		if !slices.Contains(valid, c) {
			return nil, errors.NewValidationError("component", "%s has no %q component (valid: %s)",
				tool.MustInfo(t).DisplayName, c, joinComponents(valid))
		}
		out = append(out, c)
	}
	return out, nil
}

func joinComponents(cs []install.Component) string {
	s := make([]string, len(cs))
	for i, c := range cs {
		s[i] = string(c)
	}
	return strings.Join(s, ", ")
}

func printPurgeReport(w io.Writer, info tool.Info, r install.PurgeReport) {
	for _, id := range r.Backups {
		fmt.Fprintf(w, "Backed up to %s\n", id)
	}
	if len(r.Removed) == 0 && len(r.Failed) == 0 {
		fmt.Fprintf(w, "Nothing of %s was found\n", info.DisplayName)
		return
	}
	for _, c := range r.Removed {
		fmt.Fprintf(w, "%s removed %s\n", green("✓"), c)
	}
	for _, c := range r.Failed {
		fmt.Fprintf(w, "%s failed to remove %s\n", yellow("!"), c)
	}
}
