// Package profile provides CLI commands for managing API profiles.
package profile

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli/prompt"
	"github.com/thoreinstein/zcf/internal/profile"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root profile command.
var Cmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"profiles"},
	Short:   "Manage API profiles",
	Long: `Manage the API profiles of a tool.

A profile holds an API key (or auth token), a base URL and model
choices. Switching to a profile writes it into the tool's settings:
the env block of ~/.claude/settings.json, model_providers in
~/.codex/config.toml (with the key in auth.json), or customProvider in
~/.gemini/settings.json.

Profiles are stored in ~/.config/zcf/profiles.json, keyed by tool.`,
	Example: `  # Add a profile from a provider preset and activate it
  zcf profile add --provider glm --key sk-... --tool codex --default

  # List Claude Code profiles
  zcf profile list

  # Switch interactively
  zcf profile switch

  See Also:
    zcf profile add       - Add profiles
    zcf profile switch    - Change the current profile
    zcf profile providers - List provider presets`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// resolve finds ref by id or name, or asks the user to pick a profile
// when ref is empty.
func resolve(s *profile.Store, ref string) (profile.Profile, bool, error) {
	if ref != "" {
		p, err := s.Resolve(ref)
		return p, err == nil, err
	}
	c, err := s.Load()
	if err != nil {
		return profile.Profile{}, false, err
	}
	list := c.Profiles()
	items := make([]string, len(list))
	def := 0
	for i, p := range list {
		items[i] = p.Name
		if p.ID == c.CurrentID {
			items[i] += " (current)"
			def = i
		}
	}
	idx, ok, err := prompt.New().Select("Select a profile:", items, def)
	if err != nil || !ok {
		return profile.Profile{}, false, err
	}
	return list[idx], true, nil
}

// stores returns the tool's profile store and the applier.
func stores() (*profile.Store, *profile.Applier, error) {
	t, err := flags.Tool()
	if err != nil {
		return nil, nil, err
	}
	app := flags.App()
	return app.Profiles(t), app.Applier(), nil
}
