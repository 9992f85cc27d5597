package install

import (
	"context"

	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/runner"
	"github.com/thoreinstein/zcf/internal/runner/runnertest"
	"github.com/thoreinstein/zcf/internal/tool"
)

type stubEnv struct {
	platform   probe.Platform
	wsl        bool
	restricted bool
	elevate    bool
	commands   map[string]bool
}

func (e *stubEnv) Platform() probe.Platform { return e.platform }
func (e *stubEnv) IsWSL() bool              { return e.wsl }
func (e *stubEnv) IsRestrictedShell() bool  { return e.restricted }

func (e *stubEnv) CommandExists(_ context.Context, name string) bool {
	return e.commands[name]
}

func (e *stubEnv) WrapElevated(cmd runner.Command) (runner.Command, bool) {
	if !e.elevate {
		return cmd, false
	}
	return runner.Command{Name: "sudo", Args: cmd.Argv(), Stream: cmd.Stream}, true
}

type memRecords struct {
	methods map[tool.Tool]tool.Method
	writes  int
}

func newMemRecords() *memRecords {
	return &memRecords{methods: map[tool.Tool]tool.Method{}}
}

func (r *memRecords) ReadMethod(t tool.Tool) (tool.Method, bool, error) {
	m, ok := r.methods[t]
	return m, ok, nil
}

func (r *memRecords) WriteMethod(t tool.Tool, m tool.Method) error {
	r.writes++
	r.methods[t] = m
	return nil
}

func newTestExecutor(env *stubEnv, r *runnertest.Fake, rec *memRecords) *Executor {
	return NewExecutor(env, r, WithRecords(rec), WithClaudeLocalBinary(""))
}
