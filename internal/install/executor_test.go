package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/runner/runnertest"
	"github.com/thoreinstein/zcf/internal/tool"
)

func TestInstall_Commands(t *testing.T) {
	tests := []struct {
		name   string
		tool   tool.Tool
		method tool.Method
		want   string
	}{
		{"claude npm", tool.Claude, tool.NPM, "npm install -g @anthropic-ai/claude-code"},
		{"claude brew cask", tool.Claude, tool.Homebrew, "brew install --cask claude-code"},
		{"claude curl", tool.Claude, tool.Curl, "bash -c " + claudeShScript},
		{"claude powershell", tool.Claude, tool.PowerShell, "powershell -Command " + claudePs1Script},
		{"claude cmd", tool.Claude, tool.CMD, "cmd /c " + claudeCmdScript},
		{"codex brew", tool.Codex, tool.Homebrew, "brew install codex"},
		{"gemini brew", tool.Gemini, tool.Homebrew, "brew install gemini-cli"},
		{"gemini npm", tool.Gemini, tool.NPM, "npm install -g @google/gemini-cli"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runnertest.New().OK(tt.want, "")
			e := newTestExecutor(&stubEnv{platform: probe.MacOS}, r, newMemRecords())

			report, err := e.Install(context.Background(), tt.method, tt.tool)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Command.String())
			assert.True(t, report.Command.Stream)
			assert.False(t, report.FellBack)
		})
	}
}

func TestInstall_UnsupportedMethodFallsBackToNPM(t *testing.T) {
	r := runnertest.New().OK("npm install -g @openai/codex", "")
	rec := newMemRecords()
	e := newTestExecutor(&stubEnv{platform: probe.Linux}, r, rec)

	report, err := e.Install(context.Background(), tool.Curl, tool.Codex)
	require.NoError(t, err)
	assert.True(t, report.FellBack)
	assert.Equal(t, tool.Curl, report.Requested)
	assert.Equal(t, tool.NPM, report.Method)
	assert.Equal(t, []string{"npm install -g @openai/codex"}, r.Calls())
	assert.Zero(t, rec.writes, "codex keeps no install record")
}

func TestInstall_FallbackRecordsResolvedMethod(t *testing.T) {
	r := runnertest.New().OK("npm install -g @google/gemini-cli", "")
	rec := newMemRecords()
	e := newTestExecutor(&stubEnv{platform: probe.Windows}, r, rec)

	report, err := e.Install(context.Background(), tool.PowerShell, tool.Gemini)
	require.NoError(t, err)
	assert.True(t, report.FellBack)
	assert.Equal(t, tool.NPM, rec.methods[tool.Gemini])
}

func TestInstall_ElevatesOnlyNPM(t *testing.T) {
	env := &stubEnv{platform: probe.Linux, elevate: true}

	r := runnertest.New().OK("sudo npm install -g @anthropic-ai/claude-code", "")
	e := newTestExecutor(env, r, newMemRecords())
	report, err := e.Install(context.Background(), tool.NPM, tool.Claude)
	require.NoError(t, err)
	assert.True(t, report.Elevated)

	r = runnertest.New().OK("brew install --cask claude-code", "")
	e = newTestExecutor(env, r, newMemRecords())
	report, err = e.Install(context.Background(), tool.Homebrew, tool.Claude)
	require.NoError(t, err)
	assert.False(t, report.Elevated)
	assert.Equal(t, []string{"brew install --cask claude-code"}, r.Calls())
}

func TestInstall_FailureIsExecutionError(t *testing.T) {
	r := runnertest.New().Fail("brew install codex", 1, "Error: No available formula")
	rec := newMemRecords()
	e := newTestExecutor(&stubEnv{platform: probe.MacOS}, r, rec)

	_, err := e.Install(context.Background(), tool.Homebrew, tool.Codex)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExecution))

	var execErr *errors.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Contains(t, execErr.Stderr, "No available formula")
	assert.Zero(t, rec.writes)
}

func TestInstall_UnknownTool(t *testing.T) {
	e := newTestExecutor(&stubEnv{}, runnertest.New(), newMemRecords())
	_, err := e.Install(context.Background(), tool.NPM, tool.Tool("cursor"))
	assert.True(t, errors.Is(err, errors.ErrUnknownTool))
}

type failingRecords struct{ memRecords }

func (failingRecords) WriteMethod(tool.Tool, tool.Method) error {
	return errors.New("disk full")
}

func TestInstall_RecordFailureDoesNotFailInstall(t *testing.T) {
	r := runnertest.New().OK("npm install -g @anthropic-ai/claude-code", "")
	e := NewExecutor(&stubEnv{platform: probe.Linux}, r, WithRecords(&failingRecords{}))
	_, err := e.Install(context.Background(), tool.NPM, tool.Claude)
	assert.NoError(t, err)
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   string
		ok     bool
	}{
		{"semver", "1.0.72 (Claude Code)\n", "1.0.72", true},
		{"prefixed", "codex-cli 0.46.0", "0.46.0", true},
		{"no number", "dev build\n", "dev build", true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runnertest.New().OK("claude --version", tt.stdout)
			e := newTestExecutor(&stubEnv{}, r, newMemRecords())
			got, ok := e.DetectVersion(context.Background(), tool.Claude)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local", "claude")
	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o755))
	require.NoError(t, os.WriteFile(local, []byte("#!/bin/sh\n"), 0o755))

	rec := newMemRecords()
	rec.methods[tool.Claude] = tool.Curl
	r := runnertest.New().OK("claude --version", "2.0.1 (Claude Code)")
	env := &stubEnv{platform: probe.Linux, commands: map[string]bool{"claude": true}}
	e := NewExecutor(env, r, WithRecords(rec), WithClaudeLocalBinary(local))

	st, err := e.Status(context.Background(), tool.Claude)
	require.NoError(t, err)
	assert.True(t, st.Installed)
	assert.Equal(t, "2.0.1", st.Version)
	assert.Equal(t, tool.Curl, st.Method)
	assert.True(t, st.LocalInstalled)
	assert.Equal(t, local, st.LocalPath)

	st, err = e.Status(context.Background(), tool.Codex)
	require.NoError(t, err)
	assert.False(t, st.Installed)
	assert.False(t, st.LocalInstalled)
	assert.Empty(t, st.LocalPath)

	require.NoError(t, e.RemoveLocalInstall())
	_, err = os.Stat(filepath.Dir(local))
	assert.True(t, os.IsNotExist(err))
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name   string
		tool   tool.Tool
		record tool.Method
		brew   bool
		want   string
	}{
		{"recorded npm", tool.Gemini, tool.NPM, false, "npm update -g @google/gemini-cli"},
		{"brew probe", tool.Codex, "", true, "brew upgrade codex"},
		{"cask", tool.Claude, tool.Homebrew, false, "brew upgrade --cask claude-code"},
		{"script self update", tool.Claude, tool.Curl, false, "claude update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newMemRecords()
			if tt.record != "" {
				rec.methods[tt.tool] = tt.record
			}
			r := runnertest.New().OK(tt.want, "")
			if tt.brew {
				r.OK("brew list "+tool.MustInfo(tt.tool).BrewName, "")
			}
			e := newTestExecutor(&stubEnv{platform: probe.MacOS}, r, rec)

			report, err := e.Update(context.Background(), tt.tool)
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.Command.String())
		})
	}
}
