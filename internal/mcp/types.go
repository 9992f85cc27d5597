package mcp

import (
	"maps"
	"slices"

	"github.com/thoreinstein/zcf/internal/tool"
)

// Transport types.
const (
	// TransportStdio launches a local process. It is the default when a
	// command is set.
	TransportStdio = "stdio"
	// TransportSSE connects to a remote server using Server-Sent Events.
	TransportSSE = "sse"
	// TransportHTTP connects to a remote server using streamable HTTP.
	TransportHTTP = "http"
)

// Server is a tool-independent MCP server definition.
type Server struct {
	Name string

	// Command and Args launch a stdio server.
	Command string
	Args    []string

	// URL is the endpoint of a remote server.
	URL string

	// Transport is stdio, sse or http. Empty means inferred.
	Transport string

	Env     map[string]string
	Headers map[string]string

	// Extra holds fields of the tool's format that zcf does not model.
	Extra map[string]any
}

// EffectiveTransport returns the transport, inferring it when unset.
func (s *Server) EffectiveTransport() string {
	if s.Transport != "" {
		return s.Transport
	}
	if s.Command == "" && s.URL != "" {
		return TransportSSE
	}
	return TransportStdio
}

// IsLocal reports whether the server runs as a local process.
func (s *Server) IsLocal() bool {
	return s.EffectiveTransport() == TransportStdio
}

// knownKeys are the fields each format maps onto Server.
var knownKeys = map[tool.Tool][]string{
	tool.Claude: {"type", "command", "args", "url", "env", "headers"},
	tool.Gemini: {"command", "args", "url", "httpUrl", "env", "headers"},
	tool.Codex:  {"command", "args", "url", "env", "http_headers"},
}

// Document renders s in t's configuration format.
func (s *Server) Document(t tool.Tool) map[string]any {
	doc := make(map[string]any, len(s.Extra)+4)
	for k, v := range s.Extra {
		if !slices.Contains(knownKeys[t], k) {
			doc[k] = v
		}
	}

	transport := s.EffectiveTransport()
	if transport == TransportStdio {
		doc["command"] = s.Command
		if len(s.Args) > 0 {
			doc["args"] = stringsToAny(s.Args)
		}
		if len(s.Env) > 0 {
			doc["env"] = stringMapToAny(s.Env)
		}
	} else {
		switch {
		case t == tool.Gemini && transport == TransportHTTP:
			doc["httpUrl"] = s.URL
		default:
			doc["url"] = s.URL
		}
		if len(s.Headers) > 0 {
			key := "headers"
			if t == tool.Codex {
				key = "http_headers"
			}
			doc[key] = stringMapToAny(s.Headers)
		}
	}

	if t == tool.Claude {
		doc["type"] = transport
	}
	return doc
}

// FromDocument decodes a server entry written in t's format.
func FromDocument(t tool.Tool, name string, v any) *Server {
	m, _ := v.(map[string]any)
	s := &Server{Name: name}
	s.Command, _ = m["command"].(string)
	s.Args = anyToStrings(m["args"])
	s.Env = anyToStringMap(m["env"])

	switch t {
	case tool.Claude:
		s.Transport, _ = m["type"].(string)
		s.URL, _ = m["url"].(string)
		s.Headers = anyToStringMap(m["headers"])
	case tool.Gemini:
		s.URL, _ = m["url"].(string)
		if u, ok := m["httpUrl"].(string); ok && u != "" {
			s.URL, s.Transport = u, TransportHTTP
		}
		s.Headers = anyToStringMap(m["headers"])
	case tool.Codex:
		s.URL, _ = m["url"].(string)
		if s.URL != "" && s.Command == "" {
			s.Transport = TransportHTTP
		}
		s.Headers = anyToStringMap(m["http_headers"])
	}

	for k, v := range m {
		if slices.Contains(knownKeys[t], k) {
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]any{}
		}
		s.Extra[k] = v
	}
	return s
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func stringMapToAny(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func anyToStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func anyToStringMap(v any) map[string]string {
	switch t := v.(type) {
	case map[string]string:
		return maps.Clone(t)
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, e := range t {
			if s, ok := e.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return nil
}
