package profile

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ProviderCustom marks a definition that names no preset.
const ProviderCustom = "custom"

// Definition is the compact form of a profile accepted on the command
// line and in API config files.
type Definition struct {
	Name         string   `json:"name,omitempty"`
	Type         AuthType `json:"type,omitempty"`
	Key          string   `json:"key,omitempty"`
	URL          string   `json:"url,omitempty"`
	Default      bool     `json:"default,omitempty"`
	PrimaryModel string   `json:"primaryModel,omitempty"`
	FastModel    string   `json:"fastModel,omitempty"`
	Provider     string   `json:"provider,omitempty"`
}

func presetName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}

// FromDefinition builds a profile for t from def. A provider preset
// fills in the auth type, name, URL and models the definition leaves
// out. Without a preset the type must be given.
func FromDefinition(t tool.Tool, def Definition) (Profile, error) {
	p := Profile{
		Name:         strings.TrimSpace(def.Name),
		AuthType:     def.Type,
		APIKey:       def.Key,
		BaseURL:      def.URL,
		PrimaryModel: def.PrimaryModel,
		FastModel:    def.FastModel,
	}

	if def.Provider != "" && def.Provider != ProviderCustom {
		preset, ok := LookupProvider(def.Provider)
		if !ok {
			return Profile{}, errors.NewValidationError("provider", "unknown provider %q, expected one of %s",
				def.Provider, strings.Join(append(ProviderIDs(), ProviderCustom), ", "))
		}
		if !preset.Supports(t) {
			return Profile{}, errors.NewValidationError("provider", "%s does not support %s", preset.Name, t)
		}
		p.Provider = preset.ID
		if p.Name == "" {
			p.Name = presetName(preset.Name)
		}
		if p.AuthType == "" {
			p.AuthType = AuthAPIKey
			if t == tool.Claude {
				p.AuthType = preset.Claude.AuthType
			}
		}
		fillFromPreset(t, &p, preset)
	} else if p.AuthType == "" {
		return Profile{}, errors.NewValidationError("type", "is required when no provider preset is given")
	}
	if def.Provider == ProviderCustom {
		p.Provider = ProviderCustom
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	p.ID = GenerateID(p.Name)
	return p, nil
}

func fillFromPreset(t tool.Tool, p *Profile, preset Provider) {
	or := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	switch t {
	case tool.Claude:
		p.BaseURL = or(p.BaseURL, preset.Claude.BaseURL)
		if models := preset.Claude.DefaultModels; len(models) > 0 {
			p.PrimaryModel = or(p.PrimaryModel, models[0])
			if len(models) > 1 {
				p.FastModel = or(p.FastModel, models[1])
			}
		}
	case tool.Codex:
		p.BaseURL = or(p.BaseURL, preset.Codex.BaseURL)
		p.PrimaryModel = or(p.PrimaryModel, preset.Codex.DefaultModel)
		p.WireAPI = or(p.WireAPI, preset.Codex.WireAPI)
	case tool.Gemini:
		p.BaseURL = or(p.BaseURL, preset.Gemini.BaseURL)
		p.PrimaryModel = or(p.PrimaryModel, preset.Gemini.DefaultModel)
	}
}

// ParseDefinitions decodes a JSON array of definitions.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.NewValidationError("apiConfigs", "must be a JSON array of objects: %v", err)
	}
	return defs, nil
}

// FromDefinitions converts defs in order. Names must be unique across
// the list.
func FromDefinitions(t tool.Tool, defs []Definition) ([]Profile, error) {
	out := make([]Profile, 0, len(defs))
	seen := map[string]bool{}
	for i, def := range defs {
		p, err := FromDefinition(t, def)
		if err != nil {
			return nil, errors.Wrapf(err, "config %d", i+1)
		}
		if seen[p.Name] {
			return nil, errors.NewValidationError("name", "duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out, nil
}
