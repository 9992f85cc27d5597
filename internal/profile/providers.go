package profile

import (
	"slices"

	"github.com/thoreinstein/zcf/internal/tool"
)

// Wire protocols a Gemini custom provider can speak.
const (
	WireOpenAI    = "openai"
	WireAnthropic = "anthropic"
	WireGemini    = "gemini"
)

// ClaudeEndpoint is a provider's Claude Code configuration.
type ClaudeEndpoint struct {
	BaseURL       string
	AuthType      AuthType
	DefaultModels []string
}

// CodexEndpoint is a provider's Codex configuration.
type CodexEndpoint struct {
	BaseURL      string
	WireAPI      string
	DefaultModel string
}

// GeminiEndpoint is a provider's Gemini configuration.
type GeminiEndpoint struct {
	BaseURL      string
	WireProtocol string
	DefaultModel string
}

// Provider is a known third-party API service.
type Provider struct {
	ID          string
	Name        string
	Description string
	Claude      *ClaudeEndpoint
	Codex       *CodexEndpoint
	Gemini      *GeminiEndpoint
}

// Supports reports whether the provider has an endpoint for t.
func (p Provider) Supports(t tool.Tool) bool {
	switch t {
	case tool.Claude:
		return p.Claude != nil
	case tool.Codex:
		return p.Codex != nil
	case tool.Gemini:
		return p.Gemini != nil
	}
	return false
}

var providers = []Provider{
	{
		ID:          "302ai",
		Name:        "302.AI",
		Description: "302.AI API Service",
		Claude:      &ClaudeEndpoint{BaseURL: "https://api.302.ai/cc", AuthType: AuthAPIKey},
		Codex:       &CodexEndpoint{BaseURL: "https://api.302.ai/v1", WireAPI: "responses"},
		Gemini:      &GeminiEndpoint{BaseURL: "https://api.302.ai/v1", WireProtocol: WireOpenAI, DefaultModel: "gemini-2.0-flash-exp"},
	},
	{
		ID:          "packycode",
		Name:        "PackyCode",
		Description: "PackyCode API Service",
		Claude:      &ClaudeEndpoint{BaseURL: "https://www.packyapi.com", AuthType: AuthToken},
		Codex:       &CodexEndpoint{BaseURL: "https://www.packyapi.com/v1", WireAPI: "responses"},
		Gemini:      &GeminiEndpoint{BaseURL: "https://www.packyapi.com/v1", WireProtocol: WireOpenAI, DefaultModel: "gemini-2.0-flash-exp"},
	},
	{
		ID:          "glm",
		Name:        "GLM",
		Description: "GLM (Zhipu AI)",
		Claude:      &ClaudeEndpoint{BaseURL: "https://open.bigmodel.cn/api/anthropic", AuthType: AuthToken},
		Codex:       &CodexEndpoint{BaseURL: "https://open.bigmodel.cn/api/coding/paas/v4", WireAPI: "chat", DefaultModel: "GLM-4.6"},
		Gemini:      &GeminiEndpoint{BaseURL: "https://open.bigmodel.cn/api/paas/v4", WireProtocol: WireOpenAI, DefaultModel: "glm-4-flash"},
	},
	{
		ID:          "minimax",
		Name:        "MiniMax",
		Description: "MiniMax API Service",
		Claude:      &ClaudeEndpoint{BaseURL: "https://api.minimaxi.com/anthropic", AuthType: AuthToken, DefaultModels: []string{"MiniMax-M2", "MiniMax-M2"}},
		Codex:       &CodexEndpoint{BaseURL: "https://api.minimaxi.com/v1", WireAPI: "chat", DefaultModel: "MiniMax-M2"},
		Gemini:      &GeminiEndpoint{BaseURL: "https://api.minimaxi.com/v1", WireProtocol: WireOpenAI, DefaultModel: "MiniMax-M2"},
	},
	{
		ID:          "kimi",
		Name:        "Kimi",
		Description: "Kimi (Moonshot AI)",
		Claude:      &ClaudeEndpoint{BaseURL: "https://api.kimi.com/coding/", AuthType: AuthToken},
		Codex:       &CodexEndpoint{BaseURL: "https://api.kimi.com/coding/v1", WireAPI: "chat", DefaultModel: "kimi-for-coding"},
		Gemini:      &GeminiEndpoint{BaseURL: "https://api.kimi.com/coding/v1", WireProtocol: WireOpenAI, DefaultModel: "kimi-for-coding"},
	},
}

// Providers returns the presets that support t, in catalog order.
func Providers(t tool.Tool) []Provider {
	var out []Provider
	for _, p := range providers {
		if p.Supports(t) {
			out = append(out, p)
		}
	}
	return out
}

// LookupProvider returns the preset with id.
func LookupProvider(id string) (Provider, bool) {
	i := slices.IndexFunc(providers, func(p Provider) bool { return p.ID == id })
	if i < 0 {
		return Provider{}, false
	}
	return providers[i], true
}

// ProviderIDs lists every preset id.
func ProviderIDs() []string {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID
	}
	return ids
}
