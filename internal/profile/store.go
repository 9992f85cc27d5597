package profile

import (
	"encoding/json"
	"io/fs"
	"strings"

	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/tool"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// ErrProfileNotFound indicates no profile has the requested id or name.
var ErrProfileNotFound = errors.Mark(errors.New("profile not found"), errors.ErrNotFound)

// filePerm keeps plaintext API keys private to the user.
const filePerm = 0o600

// Store persists one tool's profile collection. Other tools' collections
// in the same file are preserved byte for byte.
type Store struct {
	tool    tool.Tool
	path    string
	backups *backup.Manager
}

// Option configures a Store.
type Option func(*Store)

// WithPath overrides the profiles file location.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithBackups snapshots the profiles file before deletions.
func WithBackups(m *backup.Manager) Option {
	return func(s *Store) {
		s.backups = m
	}
}

// NewStore returns the profile store for t.
func NewStore(t tool.Tool, opts ...Option) *Store {
	s := &Store{tool: t, path: paths.ProfilesFile()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tool returns the tool whose profiles the store holds.
func (s *Store) Tool() tool.Tool { return s.tool }

// Path returns the profiles file location.
func (s *Store) Path() string { return s.path }

func (s *Store) readFile() (map[string]json.RawMessage, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.ConfigIO(err, "reading "+s.path)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ConfigIO(err, "parsing "+s.path)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	return doc, nil
}

// Load reads the collection. A missing file is an empty collection; a
// file that exists but cannot be parsed is an error marked
// errors.ErrConfigIO.
func (s *Store) Load() (*Collection, error) {
	doc, err := s.readFile()
	if err != nil {
		return nil, err
	}
	c := &Collection{}
	raw, ok := doc[string(s.tool)]
	if !ok {
		return c, nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, errors.ConfigIO(err, "parsing "+string(s.tool)+" profiles in "+s.path)
	}
	return c, nil
}

func (s *Store) save(c *Collection) error {
	doc, err := s.readFile()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding profiles")
	}
	doc[string(s.tool)] = raw
	if err := fileutil.AtomicWriteJSONWithPerm(s.path, doc, filePerm); err != nil {
		return errors.ConfigIO(err, "writing "+s.path)
	}
	return nil
}

// List returns the profiles in insertion order.
func (s *Store) List() ([]Profile, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	return c.Profiles(), nil
}

// Get returns the profile with id.
func (s *Store) Get(id string) (Profile, error) {
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := c.Get(id)
	if !ok {
		return Profile{}, errors.Wrapf(ErrProfileNotFound, "id %q", id)
	}
	return p, nil
}

// GetByName returns the profile named name.
func (s *Store) GetByName(name string) (Profile, error) {
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := c.byName(name)
	if !ok {
		return Profile{}, errors.Wrapf(ErrProfileNotFound, "name %q", name)
	}
	return p, nil
}

// Resolve finds a profile by id, then by name.
func (s *Store) Resolve(ref string) (Profile, error) {
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	if p, ok := c.Get(ref); ok {
		return p, nil
	}
	if p, ok := c.byName(ref); ok {
		return p, nil
	}
	return Profile{}, errors.Wrapf(ErrProfileNotFound, "%q", ref)
}

// Current returns the current profile.
func (s *Store) Current() (Profile, error) {
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := c.Get(c.CurrentID)
	if !ok {
		return Profile{}, errors.Wrap(ErrProfileNotFound, "no current profile")
	}
	return p, nil
}

func checkUnique(c *Collection, p Profile, self string) error {
	if other, ok := c.byName(p.Name); ok && other.ID != self {
		return errors.NewValidationError("name", "a profile named %q already exists", p.Name)
	}
	if other, ok := c.Get(p.ID); ok && other.ID != self {
		return errors.NewValidationError("name", "%q has the same id %q as profile %q", p.Name, p.ID, other.Name)
	}
	return nil
}

// Add validates p, derives its id and appends it. The current profile is
// not changed.
func (s *Store) Add(p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p.ID = GenerateID(p.Name)
	if err := checkUnique(c, p, ""); err != nil {
		return Profile{}, err
	}
	c.put("", p)
	if err := s.save(c); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Patch holds the fields Update changes. Nil fields are left alone.
type Patch struct {
	Name         *string
	AuthType     *AuthType
	APIKey       *string
	BaseURL      *string
	PrimaryModel *string
	FastModel    *string
	WireAPI      *string
}

func (pt Patch) apply(p Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, pt.Name)
	set(&p.APIKey, pt.APIKey)
	set(&p.BaseURL, pt.BaseURL)
	set(&p.PrimaryModel, pt.PrimaryModel)
	set(&p.FastModel, pt.FastModel)
	set(&p.WireAPI, pt.WireAPI)
	if pt.AuthType != nil {
		p.AuthType = *pt.AuthType
	}
	p.Name = strings.TrimSpace(p.Name)
	return p
}

// Update applies patch to the profile with id. A new name is validated
// like Add and re-derives the id; the profile keeps its position and,
// if it was current, stays current.
func (s *Store) Update(id string, patch Patch) (Profile, error) {
	c, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	old, ok := c.Get(id)
	if !ok {
		return Profile{}, errors.Wrapf(ErrProfileNotFound, "id %q", id)
	}
	p := patch.apply(old)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	p.ID = GenerateID(p.Name)
	if err := checkUnique(c, p, id); err != nil {
		return Profile{}, err
	}
	c.put(id, p)
	if c.CurrentID == id {
		c.CurrentID = p.ID
	}
	if err := s.save(c); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// DeleteResult reports a deletion.
type DeleteResult struct {
	Deleted []string
	// CurrentID is the current profile afterwards, "" when none remain.
	CurrentID string
	// Promoted is set when the current profile was deleted and CurrentID
	// took its place.
	Promoted bool
	// Backup is the id of the snapshot taken first, if any.
	Backup string
}

// Delete removes the profiles with ids. Every id must exist or nothing
// is deleted. When the current profile goes, the first remaining profile
// in insertion order becomes current.
func (s *Store) Delete(ids ...string) (DeleteResult, error) {
	if len(ids) == 0 {
		return DeleteResult{}, errors.NewValidationError("ids", "at least one profile id is required")
	}
	c, err := s.Load()
	if err != nil {
		return DeleteResult{}, err
	}
	for _, id := range ids {
		if _, ok := c.Get(id); !ok {
			return DeleteResult{}, errors.Wrapf(ErrProfileNotFound, "id %q", id)
		}
	}

	var res DeleteResult
	if s.backups != nil && fileutil.Exists(s.path) {
		m, err := s.backups.Backup(string(s.tool), "profile-delete", []string{s.path})
		if err != nil {
			return DeleteResult{}, errors.ConfigIO(err, "backing up "+s.path)
		}
		res.Backup = m.ID
	}

	lostCurrent := false
	for _, id := range ids {
		if _, ok := c.Get(id); ok {
			c.remove(id)
			res.Deleted = append(res.Deleted, id)
			lostCurrent = lostCurrent || id == c.CurrentID
		}
	}
	if lostCurrent {
		c.CurrentID = ""
		if c.Len() > 0 {
			c.CurrentID = c.order[0]
			res.Promoted = true
		}
	}
	res.CurrentID = c.CurrentID
	if err := s.save(c); err != nil {
		return DeleteResult{}, err
	}
	return res, nil
}

// Switch makes id the current profile. It only moves the pointer; call
// Applier.Apply, or use SwitchAndApply, to update the tool's settings.
func (s *Store) Switch(id string) (string, error) {
	c, err := s.Load()
	if err != nil {
		return "", err
	}
	if _, ok := c.Get(id); !ok {
		return "", errors.Wrapf(ErrProfileNotFound, "id %q", id)
	}
	c.CurrentID = id
	if err := s.save(c); err != nil {
		return "", err
	}
	return id, nil
}
