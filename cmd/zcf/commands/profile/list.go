package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/profile"
	"github.com/thoreinstein/zcf/internal/redact"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List profiles",
	Long: `List the tool's profiles in the order they were added. The current
profile is marked with *. API keys are masked.`,
	Example: `  zcf profile list --tool gemini
  zcf profile list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// profileOutput is one profile in JSON output.
type profileOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AuthType     string `json:"auth_type"`
	APIKey       string `json:"api_key,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	PrimaryModel string `json:"primary_model,omitempty"`
	FastModel    string `json:"fast_model,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Current      bool   `json:"current"`
}

func runList(cmd *cobra.Command, _ []string) error {
	s, _, err := stores()
	if err != nil {
		return err
	}
	c, err := s.Load()
	if err != nil {
		return err
	}

	out := make([]profileOutput, 0, c.Len())
	for _, p := range c.Profiles() {
		out = append(out, toOutput(p, p.ID == c.CurrentID))
	}
	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding output")
	}
	printList(cmd.OutOrStdout(), out)
	return nil
}

func toOutput(p profile.Profile, current bool) profileOutput {
	o := profileOutput{
		ID:           p.ID,
		Name:         p.Name,
		AuthType:     string(p.AuthType),
		BaseURL:      redact.URL(p.BaseURL),
		PrimaryModel: p.PrimaryModel,
		FastModel:    p.FastModel,
		Provider:     p.Provider,
		Current:      current,
	}
	if p.APIKey != "" {
		o.APIKey = redact.Mask(p.APIKey)
	}
	return o
}

func printList(w io.Writer, out []profileOutput) {
	if len(out) == 0 {
		fmt.Fprintln(w, "No profiles configured")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Add one with: zcf profile add <name> --type api_key --key <key>")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tID\tTYPE\tKEY\tBASE URL\tMODEL")
	for _, p := range out {
		mark := " "
		if p.Current {
			mark = green("*")
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\n",
			mark, cyan(p.Name), gray(p.ID), p.AuthType, dash(p.APIKey), dash(p.BaseURL), dash(p.PrimaryModel))
	}
	tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
