package settings

import "github.com/thoreinstein/zcf/internal/tool"

// Gemini authentication types.
const (
	GeminiAuthOAuth    = "oauth"
	GeminiAuthAPIKey   = "api_key"
	GeminiAuthVertexAI = "vertex_ai"
)

// DefaultCodexModel is written into a fresh Codex config.
const DefaultCodexModel = "gpt-5-codex"

// DefaultOptions tune CreateDefault.
type DefaultOptions struct {
	// Language is the UI language, "en" when empty.
	Language string
	// AuthType is the Gemini authentication type, GeminiAuthOAuth when empty.
	AuthType      string
	APIKey        string
	VertexProject string
}

// CreateDefault returns the document zcf writes when t has no settings yet.
func CreateDefault(t tool.Tool, opts DefaultOptions) Document {
	switch t {
	case tool.Gemini:
		return geminiDefault(opts)
	case tool.Codex:
		return Document{"model": DefaultCodexModel}
	case tool.Claude:
		return Document{
			KeyEnv: map[string]any{},
			"permissions": map[string]any{
				"allow": []any{},
				"deny":  []any{},
			},
		}
	default:
		return Document{}
	}
}

func geminiDefault(opts DefaultOptions) Document {
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	authType := opts.AuthType
	if authType == "" {
		authType = GeminiAuthOAuth
	}

	auth := map[string]any{"type": authType}
	switch authType {
	case GeminiAuthAPIKey:
		if opts.APIKey != "" {
			auth["apiKey"] = opts.APIKey
		}
	case GeminiAuthVertexAI:
		if opts.VertexProject != "" {
			auth["vertexAiProject"] = opts.VertexProject
		}
	}

	doc := Document{
		"version":        "1.0.0",
		"mode":           "official",
		"authentication": auth,
		"model": map[string]any{
			"default":     "gemini-2.5-pro",
			"fast":        "gemini-2.5-flash",
			"preferences": deepCopyMap(geminiPreferences),
		},
		"tools": map[string]any{
			"enabled":      []any{"fileSystem", "shell", "webFetch", "googleSearch"},
			"googleSearch": map[string]any{"grounding": true},
		},
		KeyMCPServers:     map[string]any{},
		KeyCustomCommands: map[string]any{},
		"ui": map[string]any{
			"theme":    "auto",
			"language": lang,
		},
		"telemetry": map[string]any{"enabled": false},
	}

	// The api-key selection lets the Gemini CLI skip its OAuth onboarding.
	if authType == GeminiAuthAPIKey && opts.APIKey != "" {
		doc["security"] = map[string]any{
			"auth": map[string]any{
				"selectedType": "api-key",
				"apiKey":       opts.APIKey,
			},
			"onboarding": map[string]any{"completed": true},
		}
	}
	return doc
}
