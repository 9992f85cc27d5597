package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/profile"
)

func init() {
	Cmd.AddCommand(switchCmd)
}

var switchCmd = &cobra.Command{
	Use:     "switch [id|name]",
	Aliases: []string{"use"},
	Short:   "Make a profile current and apply it",
	Long: `Make a profile current and write it into the tool's settings. Without
an argument a picker lists the profiles.

Applying is idempotent: switching to the current profile rewrites the
same settings.`,
	Example: `  zcf profile switch work
  zcf profile switch --tool codex`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, a, err := stores()
		if err != nil {
			return err
		}
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		target, ok, err := resolve(s, ref)
		if err != nil || !ok {
			return err
		}
		p, err := profile.SwitchAndApply(cmd.Context(), s, a, target.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to %s\n", green("✓"), p.Name)
		return nil
	},
}
