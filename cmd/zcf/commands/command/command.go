// Package command provides CLI commands for managing Gemini custom commands.
package command

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/settings"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root command command.
var Cmd = &cobra.Command{
	Use:     "command",
	Aliases: []string{"commands", "cmd"},
	Short:   "Manage custom commands",
	Long: `Manage the reusable prompts stored in the customCommands map of
~/.gemini/settings.json. Only Gemini keeps custom commands in its
settings; the commands default to --tool gemini.`,
	Example: `  # Install the built-in templates
  zcf command templates install code-review write-tests

  # Add your own
  zcf command add changelog --prompt "Summarize the staged changes as a changelog entry"

  See Also:
    zcf command list      - List commands
    zcf command templates - List built-in templates`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// registry returns the command registry, defaulting to Gemini when no
// --tool was given.
func registry() (*settings.Commands, error) {
	if flags.GetToolFlag() == "" {
		flags.SetToolFlag("gemini")
	}
	t, err := flags.Tool()
	if err != nil {
		return nil, err
	}
	return flags.App().Commands(t)
}
