package install

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/runner/runnertest"
	"github.com/thoreinstein/zcf/internal/tool"
)

func pickFirst(_ tool.Tool, options []MethodOption) (tool.Method, bool, error) {
	return options[0].Method, true, nil
}

func TestSession_RetryTriesEachMethodOnce(t *testing.T) {
	r := runnertest.New().
		Fail("brew install codex", 1, "brew failed").
		Fail("npm install -g @openai/codex", 1, "npm failed")
	env := &stubEnv{platform: probe.MacOS}
	exec := newTestExecutor(env, r, newMemRecords())

	p := NewMockPrompter(t)
	var offered [][]tool.Method
	p.EXPECT().SelectMethod(tool.Codex, mock.Anything).
		RunAndReturn(func(tl tool.Tool, opts []MethodOption) (tool.Method, bool, error) {
			offered = append(offered, methodsOf(opts))
			return pickFirst(tl, opts)
		}).Times(2)
	p.EXPECT().ConfirmRetry(tool.Codex, tool.Homebrew, mock.Anything).Return(true, nil).Once()
	p.EXPECT().ConfirmRetry(tool.Codex, tool.NPM, mock.Anything).Return(false, nil).Once()

	res, err := NewSession(exec, env, p, SessionOptions{}).Run(context.Background(), tool.Codex)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInstallFailed))
	assert.True(t, errors.Is(err, errors.ErrExecution))
	assert.Contains(t, err.Error(), "npm failed")

	assert.Equal(t, StateDoneFailure, res.State)
	assert.Equal(t, []tool.Method{tool.Homebrew, tool.NPM}, res.Attempted())
	assert.Equal(t, [][]tool.Method{{tool.Homebrew, tool.NPM}, {tool.NPM}}, offered)
	assert.Equal(t, 1, r.Count("brew install codex"))
	assert.Equal(t, 1, r.Count("npm install -g @openai/codex"))
}

func TestSession_ExhaustedOptionsEndWithoutPrompt(t *testing.T) {
	r := runnertest.New().
		Fail("brew install codex", 1, "").
		Fail("npm install -g @openai/codex", 1, "")
	env := &stubEnv{platform: probe.MacOS}
	exec := newTestExecutor(env, r, newMemRecords())

	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Codex, mock.Anything).RunAndReturn(pickFirst).Times(2)
	p.EXPECT().ConfirmRetry(tool.Codex, mock.Anything, mock.Anything).Return(true, nil).Times(2)

	res, err := NewSession(exec, env, p, SessionOptions{}).Run(context.Background(), tool.Codex)
	require.Error(t, err)
	assert.Equal(t, StateDoneFailure, res.State)
	assert.Len(t, res.Attempts, 2)
}

func TestSession_FallbackExcludesResolvedMethod(t *testing.T) {
	// Claude on Windows offers powershell, npm and cmd. Only npm is scripted.
	r := runnertest.New().Fail("powershell -Command "+claudePs1Script, 1, "blocked")
	r.OK("npm install -g @anthropic-ai/claude-code", "")
	env := &stubEnv{platform: probe.Windows}
	rec := newMemRecords()
	exec := newTestExecutor(env, r, rec)

	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Claude, mock.Anything).RunAndReturn(pickFirst).Times(2)
	p.EXPECT().ConfirmRetry(tool.Claude, tool.PowerShell, mock.Anything).Return(true, nil).Once()

	res, err := NewSession(exec, env, p, SessionOptions{}).Run(context.Background(), tool.Claude)
	require.NoError(t, err)
	assert.Equal(t, StateDoneSuccess, res.State)
	assert.Equal(t, []tool.Method{tool.PowerShell, tool.NPM}, res.Attempted())
	assert.Equal(t, tool.NPM, rec.methods[tool.Claude])
}

func TestSession_SuccessFirstTry(t *testing.T) {
	r := runnertest.New().OK("npm install -g @google/gemini-cli", "")
	env := &stubEnv{platform: probe.Linux}
	rec := newMemRecords()
	exec := newTestExecutor(env, r, rec)

	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Gemini, mock.Anything).RunAndReturn(pickFirst).Once()

	res, err := NewSession(exec, env, p, SessionOptions{}).Run(context.Background(), tool.Gemini)
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, tool.NPM, rec.methods[tool.Gemini])
}

func TestSession_CancelFirstSelection(t *testing.T) {
	r := runnertest.New()
	env := &stubEnv{platform: probe.Linux}
	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Claude, mock.Anything).Return("", false, nil).Once()

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{}).
		Run(context.Background(), tool.Claude)
	require.NoError(t, err)
	assert.Equal(t, StateCancelled, res.State)
	assert.Empty(t, r.Calls())
}

func TestSession_CancelAfterFailure(t *testing.T) {
	r := runnertest.New().Fail("bash -c "+claudeShScript, 22, "curl: (22)")
	env := &stubEnv{platform: probe.Linux}
	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Claude, mock.Anything).RunAndReturn(pickFirst).Once()
	p.EXPECT().ConfirmRetry(tool.Claude, tool.Curl, mock.Anything).Return(true, nil).Once()
	p.EXPECT().SelectMethod(tool.Claude, mock.Anything).Return("", false, nil).Once()

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{}).
		Run(context.Background(), tool.Claude)
	require.Error(t, err)
	assert.Equal(t, StateDoneFailure, res.State)
	assert.True(t, errors.Is(err, ErrInstallFailed))
}

func TestSession_SkipMethodSelection(t *testing.T) {
	r := runnertest.New().OK("npm install -g @openai/codex", "")
	env := &stubEnv{platform: probe.MacOS}
	p := NewMockPrompter(t)

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{SkipMethodSelection: true}).
		Run(context.Background(), tool.Codex)
	require.NoError(t, err)
	assert.Equal(t, StateDoneSuccess, res.State)
	assert.Equal(t, []string{"npm install -g @openai/codex"}, r.Calls())
}

func TestSession_SkipMethodSelectionFailureDoesNotRetry(t *testing.T) {
	r := runnertest.New().Fail("npm install -g @openai/codex", 1, "")
	env := &stubEnv{platform: probe.MacOS}
	p := NewMockPrompter(t)

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{SkipMethodSelection: true}).
		Run(context.Background(), tool.Codex)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInstallFailed))
	assert.Equal(t, StateDoneFailure, res.State)
	assert.Len(t, r.Calls(), 1)
}

func TestSession_AlreadyInstalled(t *testing.T) {
	r := runnertest.New().OK("gemini --version", "0.9.0\n")
	env := &stubEnv{platform: probe.Linux, commands: map[string]bool{"gemini": true}}
	p := NewMockPrompter(t)

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{}).
		Run(context.Background(), tool.Gemini)
	require.NoError(t, err)
	assert.Equal(t, StateAlreadyInstalled, res.State)
	assert.Equal(t, "0.9.0", res.Version)
	assert.True(t, res.Succeeded())
}

func TestSession_ForceIgnoresExistingBinary(t *testing.T) {
	r := runnertest.New().OK("npm install -g @google/gemini-cli", "")
	env := &stubEnv{platform: probe.Linux, commands: map[string]bool{"gemini": true}}
	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Gemini, mock.Anything).RunAndReturn(pickFirst).Once()

	res, err := NewSession(newTestExecutor(env, r, newMemRecords()), env, p, SessionOptions{Force: true}).
		Run(context.Background(), tool.Gemini)
	require.NoError(t, err)
	assert.Equal(t, StateDoneSuccess, res.State)
}

func TestSession_RejectsUnofferedMethod(t *testing.T) {
	env := &stubEnv{platform: probe.Linux}
	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Codex, mock.Anything).Return(tool.Curl, true, nil).Once()

	_, err := NewSession(newTestExecutor(env, runnertest.New(), newMemRecords()), env, p, SessionOptions{}).
		Run(context.Background(), tool.Codex)
	require.Error(t, err)
	var verr *errors.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSession_ContextCancelledSkipsRetryPrompt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &stubEnv{platform: probe.Linux}
	p := NewMockPrompter(t)
	p.EXPECT().SelectMethod(tool.Codex, mock.Anything).
		RunAndReturn(func(tl tool.Tool, opts []MethodOption) (tool.Method, bool, error) {
			cancel()
			return pickFirst(tl, opts)
		}).Once()

	res, err := NewSession(newTestExecutor(env, runnertest.New(), newMemRecords()), env, p, SessionOptions{}).
		Run(ctx, tool.Codex)
	require.Error(t, err)
	assert.Equal(t, StateDoneFailure, res.State)
	var execErr *errors.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, context.Canceled, execErr.Err)
}
