// Package paths resolves the on-disk locations zcf reads and writes.
//
// Two families of paths exist:
//
//   - zcf's own state (config, profiles, backups) under the XDG config home,
//     resolved with github.com/adrg/xdg.
//   - The managed tools' home-relative directories, which the tools
//     themselves hard-code:
//
//	| Tool        | Directory  | Settings      | Context file |
//	|-------------|------------|---------------|--------------|
//	| claude-code | ~/.claude/ | settings.json | CLAUDE.md    |
//	| codex       | ~/.codex/  | config.toml   | AGENTS.md    |
//	| gemini      | ~/.gemini/ | settings.json | GEMINI.md    |
//
// Claude keeps its install record outside its directory, in ~/.claude.json.
//
// Functions taking a tool id return an empty string for unknown ids.
package paths
