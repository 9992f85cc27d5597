// Package mcp provides CLI commands for managing MCP server configurations.
package mcp

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/mcp"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// Cmd is the root mcp command.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP server configurations",
	Long: `Manage Model Context Protocol (MCP) server configurations.

Servers are written to the tool's own file: ~/.claude.json for Claude
Code, the mcp_servers table of ~/.codex/config.toml for Codex and the
mcpServers map of ~/.gemini/settings.json for Gemini.`,
	Example: `  # List configured servers
  zcf mcp list

  # Add a local stdio server
  zcf mcp add github --env GITHUB_TOKEN=ghp_xxx -- npx -y @modelcontextprotocol/server-github

  # Install presets
  zcf mcp presets install filesystem serena --tool codex

  See Also:
    zcf mcp add     - Add a server
    zcf mcp remove  - Remove a server
    zcf mcp presets - List and install presets`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func registry() (*mcp.Registry, error) {
	t, err := flags.Tool()
	if err != nil {
		return nil, err
	}
	return flags.App().MCP(t), nil
}
