package profile

import (
	"bytes"
	"encoding/json"
	"net/url"
	"slices"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
)

// AuthType says how a profile authenticates.
type AuthType string

const (
	AuthAPIKey   AuthType = "api_key"
	AuthToken    AuthType = "auth_token"
	AuthCCRProxy AuthType = "ccr_proxy"
)

// Valid reports whether a is a known auth type.
func (a AuthType) Valid() bool {
	switch a {
	case AuthAPIKey, AuthToken, AuthCCRProxy:
		return true
	}
	return false
}

// NeedsKey reports whether profiles of this type must carry an API key.
func (a AuthType) NeedsKey() bool {
	return a == AuthAPIKey || a == AuthToken
}

// Profile is one named set of credentials, endpoint and models.
type Profile struct {
	// ID is derived from Name and never written to disk.
	ID           string   `json:"-"`
	Name         string   `json:"name"`
	AuthType     AuthType `json:"authType"`
	APIKey       string   `json:"apiKey,omitempty"`
	BaseURL      string   `json:"baseUrl,omitempty"`
	PrimaryModel string   `json:"primaryModel,omitempty"`
	FastModel    string   `json:"fastModel,omitempty"`
	// Provider is the preset the profile was built from, if any.
	Provider string `json:"provider,omitempty"`
	// WireAPI is the Codex wire protocol: responses or chat.
	WireAPI string `json:"wireApi,omitempty"`
}

// Validate checks the fields a profile must have on its own. Uniqueness
// is checked by the Store.
func (p Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.NewValidationError("name", "is required"))
	}
	switch {
	case p.AuthType == "":
		errs = append(errs, errors.NewValidationError("authType", "is required"))
	case !p.AuthType.Valid():
		errs = append(errs, errors.NewValidationError("authType", "must be api_key, auth_token or ccr_proxy, got %q", p.AuthType))
	case p.AuthType.NeedsKey() && strings.TrimSpace(p.APIKey) == "":
		errs = append(errs, errors.NewValidationError("apiKey", "is required for %s profiles", p.AuthType))
	}
	if p.BaseURL != "" {
		u, err := url.Parse(p.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, errors.NewValidationError("baseUrl", "must be an http or https URL, got %q", p.BaseURL))
		}
	}
	if p.WireAPI != "" && p.WireAPI != "responses" && p.WireAPI != "chat" {
		errs = append(errs, errors.NewValidationError("wireApi", "must be responses or chat, got %q", p.WireAPI))
	}
	return errors.Join(errs...)
}

// Collection is one tool's profiles. The zero value is empty and ready
// to use.
type Collection struct {
	CurrentID string
	order     []string
	profiles  map[string]Profile
}

// Len returns the number of profiles.
func (c *Collection) Len() int {
	return len(c.order)
}

// Profiles returns the profiles in insertion order.
func (c *Collection) Profiles() []Profile {
	out := make([]Profile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.profiles[id])
	}
	return out
}

// Get returns the profile with id.
func (c *Collection) Get(id string) (Profile, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

func (c *Collection) byName(name string) (Profile, bool) {
	for _, id := range c.order {
		if p := c.profiles[id]; p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// put inserts p, or replaces the profile stored under old in place.
func (c *Collection) put(old string, p Profile) {
	if c.profiles == nil {
		c.profiles = make(map[string]Profile)
	}
	if i := slices.Index(c.order, old); old != "" && i >= 0 {
		delete(c.profiles, old)
		c.order[i] = p.ID
	} else {
		c.order = append(c.order, p.ID)
	}
	c.profiles[p.ID] = p
}

func (c *Collection) remove(id string) {
	delete(c.profiles, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
}

type collectionJSON struct {
	CurrentProfileID string          `json:"currentProfileId"`
	Profiles         json.RawMessage `json:"profiles"`
}

// MarshalJSON writes profiles in insertion order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.profiles[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return json.Marshal(collectionJSON{CurrentProfileID: c.CurrentID, Profiles: buf.Bytes()})
}

// UnmarshalJSON reads profiles keeping their order in the document.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	keys, err := objectKeys(raw.Profiles)
	if err != nil {
		return err
	}
	var profiles map[string]Profile
	if len(keys) > 0 {
		if err := json.Unmarshal(raw.Profiles, &profiles); err != nil {
			return err
		}
	}

	*c = Collection{CurrentID: raw.CurrentProfileID}
	for _, id := range keys {
		p := profiles[id]
		p.ID = id
		c.put("", p)
	}
	if _, ok := c.profiles[c.CurrentID]; !ok {
		c.CurrentID = ""
	}
	return nil
}

// objectKeys returns the keys of a JSON object in document order,
// dropping repeats.
func objectKeys(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.Newf("profiles must be an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
