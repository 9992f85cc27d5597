// Package mcp manages the MCP (Model Context Protocol) servers configured
// for each tool.
//
// A canonical [Server] is translated to the shape each tool expects:
//
//   - Claude Code: mcpServers in ~/.claude.json, with an explicit "type"
//   - Gemini CLI: mcpServers in settings.json, "url" for SSE and "httpUrl" for HTTP
//   - Codex: [mcp_servers.<name>] tables in config.toml
//
// Fields zcf does not model are kept in [Server.Extra] so a read, modify,
// write cycle never drops them.
//
// # Presets
//
// [Presets] lists ready-made servers (github, filesystem, postgres,
// puppeteer, slack, serena). [Registry.InstallPresets] adds several in one
// write and reports names it does not know.
package mcp
