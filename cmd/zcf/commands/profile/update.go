package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/profile"
)

func init() {
	f := updateCmd.Flags()
	f.String("name", "", "new name; the id is derived from it")
	f.String("type", "", "auth type: api_key, auth_token, ccr_proxy")
	f.String("key", "", "API key or auth token")
	f.String("url", "", "base URL, empty to clear")
	f.String("model", "", "primary model, empty to clear")
	f.String("fast-model", "", "fast model, empty to clear")
	f.String("wire-api", "", "Codex wire API: responses or chat")
	Cmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:     "update <id|name>",
	Aliases: []string{"edit"},
	Short:   "Change fields of a profile",
	Long: `Change the fields given as flags. Other fields keep their values.
Renaming re-derives the id; the profile keeps its position in the list.

When the current profile is updated its settings are applied again.`,
	Example: `  zcf profile update work --key sk-new
  zcf profile update work --name "Work EU" --url https://eu.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, a, err := stores()
		if err != nil {
			return err
		}
		old, err := s.Resolve(args[0])
		if err != nil {
			return err
		}

		patch := profile.Patch{
			Name:         changed(cmd, "name"),
			APIKey:       changed(cmd, "key"),
			BaseURL:      changed(cmd, "url"),
			PrimaryModel: changed(cmd, "model"),
			FastModel:    changed(cmd, "fast-model"),
			WireAPI:      changed(cmd, "wire-api"),
		}
		if v := changed(cmd, "type"); v != nil {
			at := profile.AuthType(*v)
			patch.AuthType = &at
		}

		p, applied, err := profile.UpdateAndApply(cmd.Context(), s, a, old.ID, patch)
		if err != nil && p.ID == "" {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s Updated %s (%s)\n", green("✓"), p.Name, p.ID)
		if err != nil {
			return err
		}
		if applied {
			fmt.Fprintln(w, "  applied to settings")
		}
		return nil
	},
}

// changed returns the flag's value when it was set on the command line.
func changed(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
