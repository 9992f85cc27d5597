package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

func newTestStore(t *testing.T, tl tool.Tool, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	return NewStore(tl, append([]Option{WithPath(path)}, opts...)...)
}

func apiProfile(name string) Profile {
	return Profile{Name: name, AuthType: AuthAPIKey, APIKey: "sk-" + name}
}

func TestStore_AddDerivesIDAndKeepsCurrent(t *testing.T) {
	s := newTestStore(t, tool.Claude)

	p, err := s.Add(apiProfile("My Work"))
	require.NoError(t, err)
	assert.Equal(t, "my-work", p.ID)

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.CurrentID, "add never switches")

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_AddDuplicateName(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	_, err := s.Add(apiProfile("X"))
	require.NoError(t, err)

	_, err = s.Add(apiProfile("X"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	list, err := s.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_AddIDCollision(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	_, err := s.Add(apiProfile("Work"))
	require.NoError(t, err)

	_, err = s.Add(apiProfile("work"))
	require.Error(t, err, "distinct names with the same id")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestStore_AddInvalid(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	_, err := s.Add(Profile{Name: "a", AuthType: AuthAPIKey})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.NoFileExists(t, s.Path())
}

func TestStore_SwitchUnknownKeepsCurrent(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, err := s.Add(apiProfile("a"))
	require.NoError(t, err)
	_, err = s.Switch(a.ID)
	require.NoError(t, err)

	_, err = s.Switch("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, a.ID, cur.ID)
}

func TestStore_DeleteCurrentPicksSurvivor(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, _ := s.Add(apiProfile("a"))
	b, _ := s.Add(apiProfile("b"))
	_, err := s.Switch(a.ID)
	require.NoError(t, err)

	res, err := s.Delete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, res.Deleted)
	assert.Equal(t, b.ID, res.CurrentID)
	assert.True(t, res.Promoted)

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, b.ID, cur.ID)
}

func TestStore_DeleteFirstRemainingByInsertionOrder(t *testing.T) {
	s := newTestStore(t, tool.Codex)
	for _, n := range []string{"zed", "amy", "bob"} {
		_, err := s.Add(apiProfile(n))
		require.NoError(t, err)
	}
	_, err := s.Switch("amy")
	require.NoError(t, err)

	res, err := s.Delete("amy")
	require.NoError(t, err)
	assert.Equal(t, "zed", res.CurrentID)
}

func TestStore_DeleteNonCurrentKeepsCurrent(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Add(apiProfile(n))
		require.NoError(t, err)
	}
	_, err := s.Switch("b")
	require.NoError(t, err)

	res, err := s.Delete("a", "c")
	require.NoError(t, err)
	assert.Equal(t, "b", res.CurrentID)
	assert.False(t, res.Promoted)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "b", cur.ID)
}

func TestStore_DeleteAllClearsCurrent(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, _ := s.Add(apiProfile("a"))
	_, err := s.Switch(a.ID)
	require.NoError(t, err)

	res, err := s.Delete(a.ID)
	require.NoError(t, err)
	assert.Empty(t, res.CurrentID)
	assert.False(t, res.Promoted)

	_, err = s.Current()
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestStore_DeleteUnknownChangesNothing(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, _ := s.Add(apiProfile("a"))

	_, err := s.Delete(a.ID, "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	list, _ := s.List()
	assert.Len(t, list, 1)
}

func TestStore_DeleteBacksUp(t *testing.T) {
	m := backup.NewManager(backup.WithBackupDir(t.TempDir()))
	s := newTestStore(t, tool.Claude, WithBackups(m))
	a, _ := s.Add(apiProfile("a"))

	res, err := s.Delete(a.ID)
	require.NoError(t, err)
	require.NotEmpty(t, res.Backup)

	manifests, err := m.List("claude-code")
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "profile-delete", manifests[0].Reason)
}

func TestStore_UpdateRenameKeepsPositionAndCurrent(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, _ := s.Add(apiProfile("a"))
	_, _ = s.Add(apiProfile("b"))
	_, err := s.Switch(a.ID)
	require.NoError(t, err)

	name := "Alpha Prime"
	model := "claude-sonnet-4-5"
	p, err := s.Update(a.ID, Patch{Name: &name, PrimaryModel: &model})
	require.NoError(t, err)
	assert.Equal(t, "alpha-prime", p.ID)
	assert.Equal(t, "sk-a", p.APIKey, "untouched fields survive")

	list, _ := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alpha-prime", list[0].ID)
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "alpha-prime", cur.ID)
	assert.Equal(t, model, cur.PrimaryModel)
}

func TestStore_UpdateValidates(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	a, _ := s.Add(apiProfile("a"))
	_, _ = s.Add(apiProfile("b"))

	taken := "b"
	_, err := s.Update(a.ID, Patch{Name: &taken})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	empty := ""
	_, err = s.Update(a.ID, Patch{APIKey: &empty})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = s.Update("ghost", Patch{})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestStore_ToolsShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	claude := NewStore(tool.Claude, WithPath(path))
	codex := NewStore(tool.Codex, WithPath(path))

	_, err := claude.Add(apiProfile("c1"))
	require.NoError(t, err)
	_, err = codex.Add(apiProfile("x1"))
	require.NoError(t, err)

	cl, err := claude.List()
	require.NoError(t, err)
	require.Len(t, cl, 1)
	assert.Equal(t, "c1", cl[0].Name)

	cx, err := codex.List()
	require.NoError(t, err)
	require.Len(t, cx, 1)
	assert.Equal(t, "x1", cx[0].Name)
}

func TestStore_CorruptFileIsSurfaced(t *testing.T) {
	s := newTestStore(t, tool.Claude)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.List()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigIO))

	_, err = s.Add(apiProfile("a"))
	require.Error(t, err)
	data, _ := os.ReadFile(s.Path())
	assert.Equal(t, "{not json", string(data), "never overwritten")
}

func TestStore_ResolveByIDOrName(t *testing.T) {
	s := newTestStore(t, tool.Gemini)
	_, err := s.Add(apiProfile("Home Lab"))
	require.NoError(t, err)

	byID, err := s.Resolve("home-lab")
	require.NoError(t, err)
	byName, err := s.Resolve("Home Lab")
	require.NoError(t, err)
	assert.Equal(t, byID, byName)

	_, err = s.GetByName("home lab")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "names are case sensitive")
}
