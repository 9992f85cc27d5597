package settings

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/tool"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// filePerm is used for every settings document; they may hold API keys.
const filePerm os.FileMode = 0o600

// Store reads and writes one settings document.
type Store struct {
	tool     tool.Tool
	path     string
	schema   Schema
	codec    codec
	defaults DefaultOptions
	backups  *backup.Manager
	// blank documents default to {} instead of CreateDefault.
	blank bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackups snapshots the document before the first write of a session.
func WithBackups(m *backup.Manager) StoreOption {
	return func(s *Store) {
		s.backups = m
	}
}

// WithDefaults sets the options used when a missing document is created.
func WithDefaults(opts DefaultOptions) StoreOption {
	return func(s *Store) {
		s.defaults = opts
	}
}

// WithPath overrides the document location.
func WithPath(path string) StoreOption {
	return func(s *Store) {
		s.path = path
	}
}

// NewStore returns the settings store for t. dir overrides the tool's
// configuration directory when non-empty.
func NewStore(t tool.Tool, dir string, opts ...StoreOption) *Store {
	s := &Store{
		tool:   t,
		path:   paths.SettingsFile(string(t), dir),
		schema: SchemaFor(t),
		codec:  jsonCodec{},
	}
	if t == tool.Codex {
		s.codec = tomlCodec{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClaudeStateStore returns a store over ~/.claude.json, where Claude
// keeps its user-scoped MCP servers.
func NewClaudeStateStore(opts ...StoreOption) *Store {
	s := &Store{
		tool:   tool.Claude,
		path:   paths.ClaudeRecordFile(),
		schema: claudeStateSchema,
		codec:  jsonCodec{},
		blank:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tool returns the tool the document belongs to.
func (s *Store) Tool() tool.Tool { return s.tool }

// Path returns the document location.
func (s *Store) Path() string { return s.path }

// Schema returns the merge schema.
func (s *Store) Schema() Schema { return s.schema }

// Exists reports whether the document is on disk.
func (s *Store) Exists() bool {
	return s.path != "" && fileutil.Exists(s.path)
}

// Load reads the document. A missing or unparsable file is reported as an
// error marked errors.ErrConfigIO; a missing file also matches
// fs.ErrNotExist.
func (s *Store) Load() (Document, error) {
	if s.path == "" {
		return nil, errors.ConfigIO(paths.ErrHomeDirNotFound, "locating "+string(s.tool)+" settings")
	}
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		return nil, errors.ConfigIO(err, "reading "+s.path)
	}
	doc, err := s.codec.decode(data)
	if err != nil {
		return nil, errors.Mark(errors.ConfigIO(err, "parsing "+s.path), ErrCorrupt)
	}
	return doc, nil
}

// ErrCorrupt marks a Load error for a document that exists but does not parse.
var ErrCorrupt = errors.New("settings document does not parse")

// IsMissing reports whether err from Load means the document does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Read returns the document, or nil when it is missing or does not parse.
// A corrupt document counts as no configuration yet.
func (s *Store) Read() (Document, error) {
	doc, err := s.Load()
	switch {
	case err == nil:
		return doc, nil
	case IsMissing(err):
		return nil, nil
	case !errors.Is(err, ErrCorrupt):
		return nil, err
	}
	slog.Warn("ignoring corrupt settings", "tool", string(s.tool), "path", s.path, "error", err)
	return nil, nil
}

// LoadOrDefault reads the document, falling back to CreateDefault when
// it is missing or corrupt.
func (s *Store) LoadOrDefault() (Document, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return s.defaultDoc(), nil
	}
	return doc, nil
}

func (s *Store) defaultDoc() Document {
	if s.blank {
		return Document{}
	}
	return CreateDefault(s.tool, s.defaults)
}

// Save writes doc atomically.
func (s *Store) Save(doc Document) error {
	if s.path == "" {
		return errors.ConfigIO(paths.ErrHomeDirNotFound, "locating "+string(s.tool)+" settings")
	}
	if err := s.ensureBackup("update"); err != nil {
		return err
	}
	if err := s.codec.write(s.path, doc, filePerm); err != nil {
		return errors.ConfigIO(err, "writing "+s.path)
	}
	return nil
}

// Update merges partial into the stored document and writes the result.
// A missing or corrupt document starts from CreateDefault; the corrupt
// file is backed up first when backups are configured.
func (s *Store) Update(partial Document) (Document, error) {
	current, err := s.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	merged := Merge(s.schema, current, partial)
	if err := s.Save(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// RemoveKey deletes key from the map stored under field.
func (s *Store) RemoveKey(field, key string) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	m, ok := doc[field].(map[string]any)
	if !ok {
		return errors.NotFoundf("%s %q", field, key)
	}
	if _, ok := m[key]; !ok {
		return errors.NotFoundf("%s %q", field, key)
	}
	delete(m, key)
	return s.Save(doc)
}

// Backup snapshots the document now.
func (s *Store) Backup(reason string) (*backup.Manifest, error) {
	if s.backups == nil {
		return nil, errors.New("backups are not configured")
	}
	return s.backups.Backup(string(s.tool), reason, []string{s.path})
}

func (s *Store) ensureBackup(reason string) error {
	if s.backups == nil || !s.Exists() {
		return nil
	}
	if _, err := s.backups.EnsureBackedUp(string(s.tool), reason, []string{s.path}); err != nil {
		return errors.ConfigIO(err, "backing up "+s.path)
	}
	return nil
}
