package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List custom commands",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		cmds, err := reg.List()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(cmds) == 0 {
			fmt.Fprintln(w, "No custom commands configured")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCONTEXT\tPROMPT")
		for _, c := range cmds {
			fmt.Fprintf(tw, "%s\t%t\t%s\n", cyan(c.Name), c.IncludeContext, gray(truncate(c.Prompt, 60)))
		}
		return tw.Flush()
	},
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
