package profile

import (
	"context"
	"io/fs"
	"os"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/settings"
	"github.com/thoreinstein/zcf/internal/tool"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// Environment variables written for the applied profile.
const (
	EnvAnthropicAPIKey    = "ANTHROPIC_API_KEY"
	EnvAnthropicAuthToken = "ANTHROPIC_AUTH_TOKEN"
	EnvAnthropicBaseURL   = "ANTHROPIC_BASE_URL"
	EnvAnthropicModel     = "ANTHROPIC_MODEL"
	EnvAnthropicFastModel = "ANTHROPIC_DEFAULT_HAIKU_MODEL"
	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
)

// Claude Code Router defaults used by ccr_proxy profiles.
const (
	CCRBaseURL = "http://127.0.0.1:3456"
	CCRToken   = "sk-zcf-x-ccr"
)

// Env receives the process environment side effect of applying a
// profile.
type Env interface {
	Setenv(key, value string) error
	Unsetenv(key string) error
}

// OSEnv writes to the real process environment.
type OSEnv struct{}

func (OSEnv) Setenv(key, value string) error { return os.Setenv(key, value) }
func (OSEnv) Unsetenv(key string) error      { return os.Unsetenv(key) }

// MapEnv records variables in a map.
type MapEnv map[string]string

func (m MapEnv) Setenv(key, value string) error {
	m[key] = value
	return nil
}

func (m MapEnv) Unsetenv(key string) error {
	delete(m, key)
	return nil
}

// Applier writes a profile into a tool's settings document.
type Applier struct {
	stores    map[tool.Tool]*settings.Store
	codexAuth string
	env       Env
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithStore uses s for s.Tool() instead of the default location.
func WithStore(s *settings.Store) ApplierOption {
	return func(a *Applier) {
		a.stores[s.Tool()] = s
	}
}

// WithCodexAuthFile overrides where the Codex API key is written.
func WithCodexAuthFile(path string) ApplierOption {
	return func(a *Applier) {
		a.codexAuth = path
	}
}

// WithEnv sets where auth variables go. The default is OSEnv.
func WithEnv(env Env) ApplierOption {
	return func(a *Applier) {
		a.env = env
	}
}

// NewApplier creates an Applier.
func NewApplier(opts ...ApplierOption) *Applier {
	a := &Applier{
		stores:    map[tool.Tool]*settings.Store{},
		codexAuth: paths.CodexAuthFile(""),
		env:       OSEnv{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Applier) store(t tool.Tool) *settings.Store {
	if s, ok := a.stores[t]; ok {
		return s
	}
	s := settings.NewStore(t, "")
	a.stores[t] = s
	return s
}

// orDelete maps an empty value to nil so the merge removes the key.
func orDelete(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// Partial returns the settings update that materializes p for t.
func Partial(t tool.Tool, p Profile) (settings.Document, error) {
	switch t {
	case tool.Claude:
		return claudePartial(p), nil
	case tool.Codex:
		return codexPartial(p), nil
	case tool.Gemini:
		return geminiPartial(p), nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
}

func claudePartial(p Profile) settings.Document {
	env := map[string]any{
		EnvAnthropicBaseURL:   orDelete(p.BaseURL),
		EnvAnthropicModel:     orDelete(p.PrimaryModel),
		EnvAnthropicFastModel: orDelete(p.FastModel),
	}
	switch p.AuthType {
	case AuthAPIKey:
		env[EnvAnthropicAPIKey] = p.APIKey
		env[EnvAnthropicAuthToken] = nil
	case AuthToken:
		env[EnvAnthropicAuthToken] = p.APIKey
		env[EnvAnthropicAPIKey] = nil
	case AuthCCRProxy:
		env[EnvAnthropicAuthToken] = CCRToken
		env[EnvAnthropicAPIKey] = nil
		env[EnvAnthropicBaseURL] = CCRBaseURL
	}
	return settings.Document{settings.KeyEnv: env}
}

func codexPartial(p Profile) settings.Document {
	wire := p.WireAPI
	if wire == "" {
		wire = "responses"
	}
	provider := map[string]any{
		"name":     p.Name,
		"base_url": p.BaseURL,
		"wire_api": wire,
		"env_key":  EnvOpenAIAPIKey,
	}
	if p.BaseURL == "" {
		delete(provider, "base_url")
	}
	return settings.Document{
		"model_provider":           p.ID,
		"model":                    orDelete(p.PrimaryModel),
		settings.KeyModelProviders: map[string]any{p.ID: provider},
	}
}

func geminiPartial(p Profile) settings.Document {
	id := p.Provider
	if id == "" {
		id = p.ID
	}
	protocol := WireOpenAI
	if preset, ok := LookupProvider(p.Provider); ok && preset.Gemini != nil {
		protocol = preset.Gemini.WireProtocol
	}
	return settings.Document{
		"mode": "custom",
		"customProvider": map[string]any{
			"enabled":      true,
			"id":           id,
			"name":         p.Name,
			"baseUrl":      orDelete(p.BaseURL),
			"apiKey":       orDelete(p.APIKey),
			"model":        orDelete(p.PrimaryModel),
			"wireProtocol": protocol,
		},
		"security": map[string]any{
			"auth": map[string]any{
				"selectedType": "api-key",
				"apiKey":       orDelete(p.APIKey),
			},
			"onboarding": map[string]any{"completed": true},
		},
	}
}

// Apply materializes p into t's settings and returns the merged
// document. Applying the same profile twice yields the same document.
func (a *Applier) Apply(ctx context.Context, t tool.Tool, p Profile) (settings.Document, error) {
	return a.apply(ctx, t, p, "")
}

// apply writes p. previousID is the id p had before a rename; Codex drops
// the provider entry stored under it.
func (a *Applier) apply(ctx context.Context, t tool.Tool, p Profile, previousID string) (settings.Document, error) {
	partial, err := Partial(t, p)
	if err != nil {
		return nil, err
	}
	if t == tool.Codex && previousID != "" && previousID != p.ID {
		if providers, ok := partial[settings.KeyModelProviders].(map[string]any); ok {
			providers[previousID] = nil
		}
	}
	logger := logging.FromContext(ctx).With("tool", t, "profile", p.ID)

	doc, err := a.store(t).Update(partial)
	if err != nil {
		return nil, errors.Wrapf(err, "applying profile %q", p.Name)
	}
	if t == tool.Codex && p.APIKey != "" {
		if err := a.writeCodexKey(p.APIKey); err != nil {
			return nil, err
		}
	}
	if err := a.exportEnv(t, p); err != nil {
		return nil, errors.Wrap(err, "exporting auth environment")
	}
	logger.Info("profile applied")
	return doc, nil
}

func (a *Applier) writeCodexKey(key string) error {
	doc := map[string]any{}
	err := fileutil.ReadJSONC(a.codexAuth, &doc)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return errors.ConfigIO(err, "reading "+a.codexAuth)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	doc[EnvOpenAIAPIKey] = key
	if err := fileutil.AtomicWriteJSONWithPerm(a.codexAuth, doc, filePerm); err != nil {
		return errors.ConfigIO(err, "writing "+a.codexAuth)
	}
	return nil
}

func (a *Applier) exportEnv(t tool.Tool, p Profile) error {
	vars := map[string]string{}
	switch t {
	case tool.Claude:
		env, _ := claudePartial(p)[settings.KeyEnv].(map[string]any)
		for k, v := range env {
			s, _ := v.(string)
			vars[k] = s
		}
	case tool.Codex:
		vars[EnvOpenAIAPIKey] = p.APIKey
	case tool.Gemini:
		vars[EnvGeminiAPIKey] = p.APIKey
	}
	for k, v := range vars {
		var err error
		if v == "" {
			err = a.env.Unsetenv(k)
		} else {
			err = a.env.Setenv(k, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SwitchAndApply makes id current in s and applies it.
func SwitchAndApply(ctx context.Context, s *Store, a *Applier, id string) (Profile, error) {
	if _, err := s.Switch(id); err != nil {
		return Profile{}, err
	}
	p, err := s.Get(id)
	if err != nil {
		return Profile{}, err
	}
	if _, err := a.Apply(ctx, s.Tool(), p); err != nil {
		return p, err
	}
	return p, nil
}

// UpdateAndApply applies patch to the profile with id and, when it is the
// current profile, applies the result. The bool reports whether settings
// were written.
func UpdateAndApply(ctx context.Context, s *Store, a *Applier, id string, patch Patch) (Profile, bool, error) {
	cur, _ := s.Current()
	p, err := s.Update(id, patch)
	if err != nil {
		return Profile{}, false, err
	}
	if cur.ID != id {
		return p, false, nil
	}
	if _, err := a.apply(ctx, s.Tool(), p, id); err != nil {
		return p, false, err
	}
	return p, true, nil
}
