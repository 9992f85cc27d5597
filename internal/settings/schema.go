package settings

import "github.com/thoreinstein/zcf/internal/tool"

// Keys shared by several documents.
const (
	KeyMCPServers      = "mcpServers"
	KeyCodexMCPServers = "mcp_servers"
	KeyCustomCommands  = "customCommands"
	KeyEnv             = "env"
	KeyModelProviders  = "model_providers"
)

var geminiPreferences = map[string]any{
	"temperature":     0.7,
	"topP":            0.95,
	"topK":            float64(40),
	"maxOutputTokens": float64(8192),
}

var geminiSchema = Schema{
	"authentication": {Kind: Object},
	"model": {Kind: Object, Fields: Schema{
		"preferences": {Kind: ObjectWhenPresent, Default: geminiPreferences},
	}},
	"tools":           {Kind: Object},
	KeyMCPServers:     {Kind: Map},
	KeyCustomCommands: {Kind: Map},
	"ui":              {Kind: Object},
	"customProvider":  {Kind: Object},
	"telemetry":       {Kind: Object},
	"security": {Kind: Object, Fields: Schema{
		"auth":       {Kind: Object},
		"onboarding": {Kind: Object},
	}},
}

var claudeSchema = Schema{
	KeyEnv:        {Kind: Map},
	"permissions": {Kind: Object},
	"hooks":       {Kind: Map},
	KeyMCPServers: {Kind: Map},
}

var codexSchema = Schema{
	KeyModelProviders:  {Kind: Map},
	KeyCodexMCPServers: {Kind: Map},
	"profiles":         {Kind: Map},
	"features":         {Kind: Object},
}

// claudeStateSchema covers ~/.claude.json, which Claude rewrites itself.
var claudeStateSchema = Schema{
	KeyMCPServers: {Kind: Map},
	"projects":    {Kind: Map},
}

// SchemaFor returns the merge schema of t's settings document.
func SchemaFor(t tool.Tool) Schema {
	switch t {
	case tool.Gemini:
		return geminiSchema
	case tool.Codex:
		return codexSchema
	case tool.Claude:
		return claudeSchema
	default:
		return Schema{}
	}
}
