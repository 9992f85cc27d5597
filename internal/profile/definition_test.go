package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

func TestFromDefinition(t *testing.T) {
	tests := []struct {
		name    string
		tool    tool.Tool
		def     Definition
		want    Profile
		wantErr string
	}{
		{
			name: "explicit",
			tool: tool.Claude,
			def:  Definition{Name: "Config1", Type: AuthAPIKey, Key: "k", URL: "https://api.anthropic.com"},
			want: Profile{ID: "config1", Name: "Config1", AuthType: AuthAPIKey, APIKey: "k", BaseURL: "https://api.anthropic.com"},
		},
		{
			name: "preset infers type and name",
			tool: tool.Claude,
			def:  Definition{Provider: "302ai", Key: "k"},
			want: Profile{ID: "302ai", Name: "302AI", AuthType: AuthAPIKey, APIKey: "k", BaseURL: "https://api.302.ai/cc", Provider: "302ai"},
		},
		{
			name: "claude preset auth token and models",
			tool: tool.Claude,
			def:  Definition{Provider: "minimax", Key: "k"},
			want: Profile{
				ID: "minimax", Name: "MiniMax", AuthType: AuthToken, APIKey: "k",
				BaseURL: "https://api.minimaxi.com/anthropic", PrimaryModel: "MiniMax-M2", FastModel: "MiniMax-M2", Provider: "minimax",
			},
		},
		{
			name: "codex preset",
			tool: tool.Codex,
			def:  Definition{Provider: "glm", Key: "k", Name: "Zhipu"},
			want: Profile{
				ID: "zhipu", Name: "Zhipu", AuthType: AuthAPIKey, APIKey: "k",
				BaseURL: "https://open.bigmodel.cn/api/coding/paas/v4", PrimaryModel: "GLM-4.6", Provider: "glm", WireAPI: "chat",
			},
		},
		{
			name: "explicit url wins over preset",
			tool: tool.Gemini,
			def:  Definition{Provider: "kimi", Key: "k", URL: "https://proxy.example.com/v1"},
			want: Profile{
				ID: "kimi", Name: "Kimi", AuthType: AuthAPIKey, APIKey: "k",
				BaseURL: "https://proxy.example.com/v1", PrimaryModel: "kimi-for-coding", Provider: "kimi",
			},
		},
		{
			name: "proxy without key",
			tool: tool.Claude,
			def:  Definition{Name: "router", Type: AuthCCRProxy},
			want: Profile{ID: "router", Name: "router", AuthType: AuthCCRProxy},
		},
		{name: "no provider no type", tool: tool.Claude, def: Definition{Name: "c", Key: "k"}, wantErr: "type"},
		{name: "custom needs type", tool: tool.Claude, def: Definition{Name: "c", Key: "k", Provider: ProviderCustom}, wantErr: "type"},
		{name: "unknown provider", tool: tool.Claude, def: Definition{Provider: "nope", Key: "k"}, wantErr: "provider"},
		{name: "missing name", tool: tool.Claude, def: Definition{Type: AuthAPIKey, Key: "k"}, wantErr: "name"},
		{name: "missing key", tool: tool.Claude, def: Definition{Name: "c", Type: AuthAPIKey}, wantErr: "apiKey"},
		{name: "invalid type", tool: tool.Claude, def: Definition{Name: "c", Type: "invalid_type", Key: "k"}, wantErr: "authType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromDefinition(tt.tool, tt.def)
			if tt.wantErr != "" {
				require.Error(t, err)
				var ve *errors.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantErr, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromDefinitions_DuplicateNames(t *testing.T) {
	defs, err := ParseDefinitions([]byte(`[
		{"name": "Config1", "type": "api_key", "key": "k1"},
		{"name": "Config1", "type": "api_key", "key": "k2"}
	]`))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	_, err = FromDefinitions(tool.Claude, defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestParseDefinitions_RejectsNonArray(t *testing.T) {
	_, err := ParseDefinitions([]byte(`{"name": "x"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestProviders(t *testing.T) {
	assert.Equal(t, []string{"302ai", "packycode", "glm", "minimax", "kimi"}, ProviderIDs())
	assert.Len(t, Providers(tool.Codex), 5)

	p, ok := LookupProvider("packycode")
	require.True(t, ok)
	assert.Equal(t, AuthToken, p.Claude.AuthType)
	_, ok = LookupProvider("missing")
	assert.False(t, ok)
}
