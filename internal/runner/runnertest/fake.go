// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/runner"
)

// Response is the scripted outcome for one command line.
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Fake answers commands from a table keyed by runner.Command.String().
// Unscripted commands fail with exit code 127.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []runner.Command
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// On scripts the response for the command line line.
func (f *Fake) On(line string, r Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = r
	return f
}

// OK scripts line to succeed with stdout.
func (f *Fake) OK(line, stdout string) *Fake {
	return f.On(line, Response{Stdout: stdout})
}

// Fail scripts line to exit with code and stderr.
func (f *Fake) Fail(line string, code int, stderr string) *Fake {
	return f.On(line, Response{ExitCode: code, Stderr: stderr})
}

// Run implements runner.Runner.
func (f *Fake) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[cmd.String()]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return runner.Result{ExitCode: -1}, &errors.ExecutionError{Command: cmd.Argv(), ExitCode: -1, Err: err}
	}
	if !ok {
		resp = Response{ExitCode: 127, Stderr: "command not found: " + cmd.Name}
	}
	res := runner.Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
	if res.ExitCode != 0 {
		return res, &errors.ExecutionError{
			Command:  cmd.Argv(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return res, nil
}

// Calls returns the command lines run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

// Count returns how many times line was run.
func (f *Fake) Count(line string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == line {
			n++
		}
	}
	return n
}
