package mcp

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/mcp"
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
	Short:   "List MCP servers",
	Long:    `List the MCP servers configured for the selected tool. Credential values are masked.`,
	Example: `  zcf mcp list --tool codex --json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry()
		if err != nil {
			return err
		}
		servers, err := reg.List()
		if err != nil {
			return err
		}
		if listJSON {
			return outputJSON(cmd.OutOrStdout(), servers)
		}
		outputTabular(cmd.OutOrStdout(), servers)
		return nil
	},
}

// serverOutput is one server in JSON output.
type serverOutput struct {
	Name      string            `json:"name"`
	Transport string            `json:"transport"`
	Command   string            `json:"command,omitempty"`
	Args      []string          `json:"args,omitempty"`
	URL       string            `json:"url,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

func outputJSON(w io.Writer, servers []*mcp.Server) error {
	out := make([]serverOutput, len(servers))
	for i, s := range servers {
		out[i] = serverOutput{
			Name:      s.Name,
			Transport: s.EffectiveTransport(),
			Command:   s.Command,
			Args:      s.Args,
			URL:       redact.URL(s.URL),
			Env:       redact.Env(s.Env),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encoding output")
}

func outputTabular(w io.Writer, servers []*mcp.Server) {
	if len(servers) == 0 {
		fmt.Fprintln(w, "No MCP servers configured")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTRANSPORT\tCOMMAND / URL")
	for _, s := range servers {
		target := redact.URL(s.URL)
		if s.IsLocal() {
			target = strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cyan(s.Name), s.EffectiveTransport(), gray(target))
	}
	tw.Flush()
}
