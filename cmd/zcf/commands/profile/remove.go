package profile

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/cli/prompt"
	"github.com/thoreinstein/zcf/internal/profile"
)

var removeYes bool

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <id|name>...",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete profiles",
	Long: `Delete one or more profiles. Every profile must exist or nothing is
deleted. profiles.json is backed up first.

When the current profile is deleted, the first remaining profile becomes
current and its settings are applied.`,
	Example: `  zcf profile remove work old --yes`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, a, err := stores()
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(args))
		names := make([]string, 0, len(args))
		for _, ref := range args {
			p, err := s.Resolve(ref)
			if err != nil {
				return err
			}
			ids = append(ids, p.ID)
			names = append(names, p.Name)
		}

		w := cmd.OutOrStdout()
		if !removeYes {
			ok, err := prompt.New().Confirm(fmt.Sprintf("Delete %s?", strings.Join(names, ", ")), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(w, "Nothing deleted")
				return nil
			}
		}

		res, err := s.Delete(ids...)
		if err != nil {
			return err
		}
		for _, id := range res.Deleted {
			fmt.Fprintf(w, "%s Deleted %s\n", green("✓"), id)
		}
		if res.Backup != "" {
			fmt.Fprintf(w, "  backup: %s\n", res.Backup)
		}
		switch {
		case res.Promoted:
			p, err := profile.SwitchAndApply(cmd.Context(), s, a, res.CurrentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s Switched to %s\n", green("✓"), p.Name)
		case res.CurrentID != "":
			fmt.Fprintf(w, "  current profile: %s\n", res.CurrentID)
		default:
			fmt.Fprintln(w, "  no profiles left")
		}
		return nil
	},
}
