// Package redact masks credentials before they reach logs or terminal output.
//
// API keys and auth tokens flow through profiles, settings env blocks and
// installer logs. Everything printed by zcf passes through this package first.
package redact

import (
	"net/url"
	"strings"
)

// sensitiveKeyParts are substrings that mark a key as holding a credential.
// Matching is case-insensitive.
var sensitiveKeyParts = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
}

// keyPrefixes are value prefixes used by provider credentials.
var keyPrefixes = []string{
	"sk-",     // Anthropic, OpenAI and most compatible gateways
	"sk-ant-", // Anthropic console keys
	"AIza",    // Google API keys
	"ghp_",    // GitHub personal access token (MCP server env)
	"gho_",
	"xoxb-", // Slack bot token (MCP server env)
	"xoxp-",
}

// plainKeys look sensitive by name but hold enum values.
var plainKeys = map[string]bool{
	"AUTHTYPE":     true,
	"AUTH_TYPE":    true,
	"SELECTEDTYPE": true,
}

// Sensitive reports whether key names a credential.
func Sensitive(key string) bool {
	upper := strings.ToUpper(key)
	if plainKeys[upper] {
		return false
	}
	for _, part := range sensitiveKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

// LooksLikeKey reports whether value starts with a known credential prefix.
func LooksLikeKey(value string) bool {
	for _, prefix := range keyPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Mask hides all but the last four characters of value.
// Values of four characters or fewer are fully hidden.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// Value masks value when key is sensitive or value looks like a credential.
func Value(key, value string) string {
	if Sensitive(key) || LooksLikeKey(value) {
		return Mask(value)
	}
	return value
}

// Env returns a copy of env with credential values masked.
func Env(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = Value(k, v)
	}
	return out
}

// URL hides the password component of a URL with embedded credentials.
// Unparseable input is returned unchanged.
func URL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	pw, ok := u.User.Password()
	if !ok || pw == "" {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), Mask(pw))
	return u.String()
}
