package profile

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/profile"
	"github.com/thoreinstein/zcf/internal/tool"
)

func init() {
	Cmd.AddCommand(providersCmd)
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List provider presets",
	Long: `List the provider presets usable with --provider for the selected tool,
with the base URL each preset fills in.`,
	Example: `  zcf profile providers --tool codex`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := flags.Tool()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tBASE URL\tDESCRIPTION")
		for _, p := range profile.Providers(t) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cyan(p.ID), p.Name, baseURL(t, p), gray(p.Description))
		}
		return tw.Flush()
	},
}

func baseURL(t tool.Tool, p profile.Provider) string {
	switch {
	case t == tool.Claude && p.Claude != nil:
		return p.Claude.BaseURL
	case t == tool.Codex && p.Codex != nil:
		return p.Codex.BaseURL
	case t == tool.Gemini && p.Gemini != nil:
		return p.Gemini.BaseURL
	}
	return "-"
}
