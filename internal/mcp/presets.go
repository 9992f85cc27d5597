package mcp

import (
	"maps"
	"slices"

	"github.com/thoreinstein/zcf/internal/tool"
)

// Preset is a ready-made server definition.
type Preset struct {
	Name        string
	Description string
	// RequiredEnv lists variables the server expects the user to export.
	RequiredEnv []string
	build       func(t tool.Tool) *Server
}

// Server returns the preset rendered for t.
func (p Preset) Server(t tool.Tool) *Server {
	s := p.build(t)
	s.Name = p.Name
	return s
}

func npx(pkg string, args ...string) []string {
	return append([]string{"-y", pkg}, args...)
}

// serenaContext is the context profile serena loads for each tool.
var serenaContext = map[tool.Tool]string{
	tool.Claude: "ide-assistant",
	tool.Codex:  "codex",
	tool.Gemini: "gemini",
}

var presets = map[string]Preset{
	"github": {
		Description: "GitHub repositories, issues and pull requests",
		RequiredEnv: []string{"GITHUB_TOKEN"},
		build: func(tool.Tool) *Server {
			return &Server{
				Command: "npx",
				Args:    npx("@modelcontextprotocol/server-github"),
				Env:     map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
			}
		},
	},
	"filesystem": {
		Description: "Read and write files under an allowed directory",
		build: func(tool.Tool) *Server {
			return &Server{Command: "npx", Args: npx("@modelcontextprotocol/server-filesystem", "/path/to/allowed/files")}
		},
	},
	"postgres": {
		Description: "Query a PostgreSQL database",
		build: func(tool.Tool) *Server {
			return &Server{Command: "npx", Args: npx("@modelcontextprotocol/server-postgres", "postgresql://localhost/mydb")}
		},
	},
	"puppeteer": {
		Description: "Browser automation with Puppeteer",
		build: func(tool.Tool) *Server {
			return &Server{Command: "npx", Args: npx("@modelcontextprotocol/server-puppeteer")}
		},
	},
	"slack": {
		Description: "Read and post Slack messages",
		RequiredEnv: []string{"SLACK_BOT_TOKEN"},
		build: func(tool.Tool) *Server {
			return &Server{
				Command: "npx",
				Args:    npx("@modelcontextprotocol/server-slack"),
				Env:     map[string]string{"SLACK_BOT_TOKEN": "${SLACK_BOT_TOKEN}"},
			}
		},
	},
	"serena": {
		Description: "Semantic code retrieval and editing",
		build: func(t tool.Tool) *Server {
			return &Server{Command: "npx", Args: npx("@serenaai/mcp", "--context", serenaContext[t])}
		},
	},
}

// Presets returns every preset sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, name := range slices.Sorted(maps.Keys(presets)) {
		p := presets[name]
		p.Name = name
		out = append(out, p)
	}
	return out
}

// LookupPreset returns a preset by name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	p.Name = name
	return p, ok
}
