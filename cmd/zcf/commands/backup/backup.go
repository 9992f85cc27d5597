// Package backup provides CLI commands for managing configuration backups.
package backup

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli"
	"github.com/thoreinstein/zcf/internal/tool"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Manage configuration backups.

Before zcf deletes profiles, purges a tool or restores a backup, it
snapshots the files involved. The first write to a settings file in a
run is backed up too. This command group lists, restores, creates and
prunes those backups.

Backups are stored in ~/.config/zcf/backups/ organized by tool.`,
	Example: `  # List all backups
  zcf backup list

  # Restore the most recent Codex backup
  zcf backup restore --tool codex

  # Remove old backups, keeping the 3 most recent
  zcf backup prune --keep 3

  See Also:
    zcf backup list    - List available backups
    zcf backup restore - Restore from a backup
    zcf backup create  - Manually create a backup
    zcf backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// targetTools returns the tool named by --tool, or every tool.
func targetTools() ([]tool.Tool, error) {
	if f := flags.GetToolFlag(); f != "" {
		return cli.ResolveTools([]string{f})
	}
	return tool.All(), nil
}
