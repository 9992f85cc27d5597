package mcp

import (
	"maps"
	"slices"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/settings"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ErrServerNotFound indicates the named server is not configured.
var ErrServerNotFound = errors.Mark(errors.New("MCP server not found"), errors.ErrNotFound)

// CommandWrapper rewrites a launcher such as npx into the argv the host
// needs to run it. probe.Probe implements it.
type CommandWrapper interface {
	WrapWindowsCommand(command string) []string
}

// Registry edits the MCP servers of one tool's document.
type Registry struct {
	tool    tool.Tool
	store   *settings.Store
	field   string
	wrapper CommandWrapper
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCommandWrapper rewrites preset commands through w before they are
// stored.
func WithCommandWrapper(w CommandWrapper) RegistryOption {
	return func(r *Registry) {
		r.wrapper = w
	}
}

// NewRegistry returns a Registry writing through store.
func NewRegistry(t tool.Tool, store *settings.Store, opts ...RegistryOption) *Registry {
	field := settings.KeyMCPServers
	if t == tool.Codex {
		field = settings.KeyCodexMCPServers
	}
	r := &Registry{tool: t, store: store, field: field}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tool returns the tool the registry belongs to.
func (r *Registry) Tool() tool.Tool { return r.tool }

func (r *Registry) servers() (map[string]any, error) {
	doc, err := r.store.Read()
	if err != nil {
		return nil, err
	}
	m, _ := doc[r.field].(map[string]any)
	return m, nil
}

// List returns the configured servers sorted by name.
func (r *Registry) List() ([]*Server, error) {
	m, err := r.servers()
	if err != nil {
		return nil, err
	}
	out := make([]*Server, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, FromDocument(r.tool, name, m[name]))
	}
	return out, nil
}

// Get returns one server.
func (r *Registry) Get(name string) (*Server, error) {
	m, err := r.servers()
	if err != nil {
		return nil, err
	}
	v, ok := m[name]
	if !ok {
		return nil, errors.Wrapf(ErrServerNotFound, "%q", name)
	}
	return FromDocument(r.tool, name, v), nil
}

// Add creates or replaces servers in a single write.
func (r *Registry) Add(servers ...*Server) error {
	entries := make(map[string]any, len(servers))
	for _, s := range servers {
		if err := Validate(s); err != nil {
			return err
		}
		entries[s.Name] = s.Document(r.tool)
	}
	if len(entries) == 0 {
		return nil
	}
	_, err := r.store.Update(settings.Document{r.field: entries})
	return err
}

// Remove deletes a server. A server that is not configured is an error.
func (r *Registry) Remove(name string) error {
	err := r.store.RemoveKey(r.field, name)
	if errors.Is(err, errors.ErrNotFound) {
		return errors.Wrapf(ErrServerNotFound, "%q", name)
	}
	return err
}

// InstallPresets adds the named presets. Unknown names are returned and
// the known ones are still installed.
func (r *Registry) InstallPresets(names []string) (installed, unknown []string, err error) {
	var servers []*Server
	for _, name := range names {
		p, ok := LookupPreset(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		servers = append(servers, r.preset(p))
		installed = append(installed, name)
	}
	if err := r.Add(servers...); err != nil {
		return nil, unknown, err
	}
	return installed, unknown, nil
}

// preset renders p for the registry's tool and host.
func (r *Registry) preset(p Preset) *Server {
	s := p.Server(r.tool)
	if r.wrapper == nil || s.Command == "" {
		return s
	}
	argv := r.wrapper.WrapWindowsCommand(s.Command)
	if len(argv) > 1 {
		s.Command = argv[0]
		s.Args = append(slices.Clone(argv[1:]), s.Args...)
	}
	return s
}
