package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/settings"
)

func init() {
	templatesCmd.AddCommand(templatesInstallCmd)
	Cmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in command templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPROMPT")
		for _, name := range settings.CommandTemplates() {
			c, _ := settings.CommandTemplate(name)
			fmt.Fprintf(tw, "%s\t%s\n", cyan(name), gray(truncate(c.Prompt, 70)))
		}
		return tw.Flush()
	},
}

var templatesInstallCmd = &cobra.Command{
	Use:   "install [template]...",
	Short: "Install built-in command templates",
	Long: `Install the named templates, or every template when none is named.
Unknown names are reported and the rest are still installed.`,
	Example: `  zcf command templates install
  zcf command templates install code-review`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = settings.CommandTemplates()
		}
		installed, unknown, err := reg.InstallTemplates(args)
		if err != nil {
			return err
		}
		for _, name := range installed {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Installed %s\n", green("✓"), name)
		}
		if len(unknown) > 0 {
			return errors.NewUserError(
				errors.Newf("unknown template(s): %s", strings.Join(unknown, ", ")),
				"Run: zcf command templates")
		}
		return nil
	},
}
