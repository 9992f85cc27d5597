package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/errors"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[min(i, len(ts)-1)]
		i++
		return t
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestBackup_CollisionGetsSuffix(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, "{}")

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManager(WithBackupDir(t.TempDir()), WithClock(fixedClock(at)))

	first, err := m.Backup("gemini", "test", []string{src})
	require.NoError(t, err)
	second, err := m.Backup("gemini", "test", []string{src})
	require.NoError(t, err)

	assert.Equal(t, "20260102T030405", first.ID)
	assert.Equal(t, "20260102T030405-1", second.ID)
}

func TestBackup_SkipsMissingPaths(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	_, err := m.Backup("claude-code", "test", []string{filepath.Join(t.TempDir(), "missing.json")})
	assert.True(t, errors.Is(err, ErrNothingToBackup))

	_, err = m.List("claude-code")
	assert.True(t, errors.Is(err, ErrNoBackupsFound))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestBackup_Directory(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "settings.json"), `{"a":1}`)
	writeFile(t, filepath.Join(src, "commands", "review.toml"), `prompt = "x"`)

	m := NewManager(WithBackupDir(t.TempDir()))
	manifest, err := m.Backup("gemini", "purge", []string{src})
	require.NoError(t, err)
	assert.Len(t, manifest.Files, 2)
	assert.Equal(t, "purge", manifest.Reason)
	for _, f := range manifest.Files {
		assert.Len(t, f.SHA256, 64)
	}
}

func TestRestore(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, "original")

	m := NewManager(WithBackupDir(t.TempDir()), WithClock(fixedClock(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	)))
	manifest, err := m.Backup("claude-code", "test", []string{src})
	require.NoError(t, err)

	writeFile(t, src, "changed")
	_, err = m.Restore("claude-code", manifest.ID)
	require.NoError(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	list, err := m.List("claude-code")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "pre-restore", list[0].Reason)
}

func TestRestore_HashMismatch(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, "original")

	root := t.TempDir()
	m := NewManager(WithBackupDir(root))
	manifest, err := m.Backup("codex", "test", []string{src})
	require.NoError(t, err)

	tampered := filepath.Join(root, "codex", manifest.ID, manifest.Files[0].RelPath)
	require.NoError(t, os.WriteFile(tampered, []byte("tampered"), 0o600))
	writeFile(t, src, "current")

	_, err = m.Restore("codex", manifest.ID)
	assert.True(t, errors.Is(err, ErrBackupCorrupted))

	data, _ := os.ReadFile(src)
	assert.Equal(t, "current", string(data), "nothing is written when verification fails")
}

func TestGet_RejectsTraversal(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	for _, id := range []string{"", "..", "../x", `a\b`} {
		_, err := m.Get("gemini", id)
		assert.True(t, errors.Is(err, errors.ErrValidation), "id %q", id)
	}
}

func TestPrune(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, "{}")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithBackupDir(t.TempDir()), WithRetentionCount(2), WithClock(fixedClock(
		base, base.Add(time.Hour), base.Add(2*time.Hour), base.Add(3*time.Hour),
	)))
	for range 4 {
		_, err := m.Backup("gemini", "test", []string{src})
		require.NoError(t, err)
	}

	removed, err := m.Prune("gemini", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260301T130000", "20260301T120000"}, removed)

	list, err := m.List("gemini")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "20260301T150000", list[0].ID)

	removed, err = m.Prune("claude-code", 1)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestEnsureBackedUp_OncePerTool(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, "{}")
	m := NewManager(WithBackupDir(t.TempDir()))

	first, err := m.EnsureBackedUp("gemini", "update", []string{src})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := m.EnsureBackedUp("gemini", "update", []string{src})
	require.NoError(t, err)
	assert.Nil(t, second)

	none, err := m.EnsureBackedUp("codex", "update", []string{filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/usr/local/bin", filepath.Join("usr", "local", "bin")},
		{"/home/u/.gemini/settings.json", filepath.Join("home", "u", ".gemini", "settings.json")},
	}
	for _, tt := range tests {
		if got := relPath(tt.input); got != tt.want {
			t.Errorf("relPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := relPath("/tmp/file:name"); got != filepath.Join("tmp", "filename") {
		t.Errorf("relPath kept colon: %q", got)
	}
}
