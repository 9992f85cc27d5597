// Package runner executes external commands and captures their output.
//
// It is the only place zcf spawns processes. Callers describe a command
// as a [Command] value and receive a [Result]; a non-zero exit is reported
// in the result and as an *errors.ExecutionError.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
)

// Command describes one process invocation.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string

	// Args are passed verbatim, without shell interpretation.
	Args []string

	// Stream tees output to the process's stdout and stderr while capturing it.
	// Installers set this so users see download progress.
	Stream bool
}

// Cmd builds a Command.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Streaming returns a copy of c with Stream set.
func (c Command) Streaming() Command {
	c.Stream = true
	return c
}

// Argv returns the command name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Result holds the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// FirstLine returns the first non-empty line of stdout, trimmed.
func (r Result) FirstLine() string {
	for _, line := range strings.Split(r.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Runner runs commands.
//
// Run returns a nil error only when the command exited 0. Otherwise the
// error is an *errors.ExecutionError and Result carries whatever output was
// captured.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	// Stdout and Stderr receive streamed output. Nil means os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Env, when non-nil, replaces the child environment.
	Env []string
}

// New returns an Exec runner bound to the process streams.
func New() *Exec {
	return &Exec{}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, c Command) (Result, error) {
	logger := logging.FromContext(ctx)
	logger.Debug("running command", "cmd", c.String())

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if e.Env != nil {
		cmd.Env = e.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if c.Stream {
		cmd.Stdin = os.Stdin
		cmd.Stdout = io.MultiWriter(&stdout, orDefault(e.Stdout, os.Stdout))
		cmd.Stderr = io.MultiWriter(&stderr, orDefault(e.Stderr, os.Stderr))
	}

	err := cmd.Run()
	res := Result{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if err != nil {
		logger.Debug("command failed", "cmd", c.String(), "exit", res.ExitCode, "error", err)
		return res, &errors.ExecutionError{
			Command:  c.Argv(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			Err:      err,
		}
	}
	return res, nil
}

func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

func orDefault(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
