package runner

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zcf/internal/errors"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExec_Success(t *testing.T) {
	skipOnWindows(t)

	res, err := New().Run(t.Context(), Cmd("sh", "-c", "echo hello; echo warn >&2"))
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "warn\n", res.Stderr)
	assert.Equal(t, "hello", res.FirstLine())
}

func TestExec_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	res, err := New().Run(t.Context(), Cmd("sh", "-c", "echo boom >&2; exit 3"))
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)

	var execErr *errors.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "echo boom >&2; exit 3"}, execErr.Command)
	assert.Contains(t, execErr.Stderr, "boom")
	assert.True(t, errors.Is(err, errors.ErrExecution))
}

func TestExec_NotFound(t *testing.T) {
	res, err := New().Run(t.Context(), Cmd("zcf-definitely-missing-binary"))
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
	assert.True(t, errors.Is(err, errors.ErrExecution))
}

func TestExec_Stream(t *testing.T) {
	skipOnWindows(t)

	var out bytes.Buffer
	e := &Exec{Stdout: &out, Stderr: &out}
	res, err := e.Run(t.Context(), Cmd("sh", "-c", "echo progress").Streaming())
	require.NoError(t, err)
	assert.Equal(t, "progress\n", res.Stdout)
	assert.Equal(t, "progress\n", out.String())
}

func TestExec_Cancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := New().Run(ctx, Cmd("sleep", "5"))
	assert.Error(t, err)
}

func TestResult_FirstLine(t *testing.T) {
	tests := []struct {
		stdout string
		want   string
	}{
		{"", ""},
		{"\n\n/usr/local/bin/claude\n/usr/bin/claude\n", "/usr/local/bin/claude"},
		{"C:\\Users\\me\\AppData\\npm\\codex.cmd\r\n", "C:\\Users\\me\\AppData\\npm\\codex.cmd"},
	}
	for _, tt := range tests {
		if got := (Result{Stdout: tt.stdout}).FirstLine(); got != tt.want {
			t.Errorf("FirstLine(%q) = %q, want %q", tt.stdout, got, tt.want)
		}
	}
}

func TestCommand_String(t *testing.T) {
	c := Cmd("npm", "install", "-g", "@openai/codex")
	assert.Equal(t, "npm install -g @openai/codex", c.String())
	assert.False(t, c.Stream)
	assert.True(t, c.Streaming().Stream)
}
