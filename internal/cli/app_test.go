package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/tool"
)

func TestApp_ToolDirOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Tools = map[string]config.ToolOverride{"gemini": {ConfigDir: dir}}
	app := NewApp(cfg, "test")

	assert.Equal(t, filepath.Join(dir, "settings.json"), app.Settings(tool.Gemini).Path())
	assert.Equal(t, dir, app.PurgeOptions(tool.Gemini, install.PurgeOptions{}).Dir)
	assert.Equal(t, "/elsewhere", app.PurgeOptions(tool.Gemini, install.PurgeOptions{Dir: "/elsewhere"}).Dir)
	assert.Contains(t, app.BackupFiles(tool.Gemini), filepath.Join(dir, "GEMINI.md"))
}

func TestApp_Commands(t *testing.T) {
	app := NewApp(nil, "test")

	_, err := app.Commands(tool.Gemini)
	require.NoError(t, err)

	_, err = app.Commands(tool.Codex)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestApp_BackupFiles(t *testing.T) {
	app := NewApp(nil, "test")

	codex := app.BackupFiles(tool.Codex)
	assert.Len(t, codex, 4)
	assert.Equal(t, "auth.json", filepath.Base(codex[2]))

	claude := app.BackupFiles(tool.Claude)
	assert.Equal(t, ".claude.json", filepath.Base(claude[2]))
}
