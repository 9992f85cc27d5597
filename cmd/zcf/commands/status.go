package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/cli"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show installation and configuration overview",
	Long: `Show, for each tool, whether its CLI is installed, the version and
install method, the current API profile and the number of MCP servers.

Without --tool every tool is listed.`,
	Example: `  # Show all tools
  zcf status

  # JSON output for scripting
  zcf status --tool codex --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// statusOutput is one row of zcf status.
type statusOutput struct {
	Tool       string `json:"tool"`
	Installed  bool   `json:"installed"`
	Version    string `json:"version,omitempty"`
	Method     string `json:"method,omitempty"`
	Local      bool   `json:"local,omitempty"`
	Profile    string `json:"profile,omitempty"`
	Profiles   int    `json:"profiles"`
	MCPServers int    `json:"mcp_servers"`
}

// platformOutput describes the host.
type platformOutput struct {
	Platform   string         `json:"platform"`
	WSL        bool           `json:"wsl,omitempty"`
	Restricted bool           `json:"restricted_shell,omitempty"`
	Tools      []statusOutput `json:"tools"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	var names []string
	if f := flags.GetToolFlag(); f != "" {
		names = []string{f}
	}
	tools, err := cli.ResolveTools(names)
	if err != nil {
		return err
	}

	app := flags.App()
	out := platformOutput{
		Platform:   string(app.Probe.Platform()),
		WSL:        app.Probe.IsWSL(),
		Restricted: app.Probe.IsRestrictedShell(),
	}
	exec := app.Executor()
	for _, t := range tools {
		st, err := exec.Status(cmd.Context(), t)
		if err != nil {
			return err
		}
		row := statusOutput{
			Tool:      string(t),
			Installed: st.Installed,
			Version:   st.Version,
			Method:    string(st.Method),
			Local:     st.LocalInstalled,
		}

		c, err := app.Profiles(t).Load()
		if err != nil {
			return errors.Wrapf(err, "loading %s profiles", t)
		}
		row.Profiles = c.Len()
		if p, ok := c.Get(c.CurrentID); ok {
			row.Profile = p.Name
		}

		servers, err := app.MCP(t).List()
		if err != nil {
			return errors.Wrapf(err, "listing %s MCP servers", t)
		}
		row.MCPServers = len(servers)
		out.Tools = append(out.Tools, row)
	}

	if statusJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding output")
	}
	printStatus(cmd.OutOrStdout(), out)
	return nil
}

func printStatus(w io.Writer, out platformOutput) {
	platform := out.Platform
	if out.WSL {
		platform += " (WSL)"
	}
	if out.Restricted {
		platform += " (Termux)"
	}
	fmt.Fprintf(w, "%s %s\n\n", bold("Platform:"), platform)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOL\tINSTALLED\tVERSION\tMETHOD\tPROFILE\tMCP")
	for _, r := range out.Tools {
		installed := gray("no")
		if r.Installed {
			installed = green("yes")
		}
		version := orDash(r.Version)
		if r.Local {
			version += " (local)"
		}
		prof := orDash(r.Profile)
		if r.Profiles > 0 {
			prof = fmt.Sprintf("%s (%d)", prof, r.Profiles)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			cyan(tool.MustInfo(tool.Tool(r.Tool)).DisplayName), installed, version, orDash(r.Method), prof, r.MCPServers)
	}
	tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
