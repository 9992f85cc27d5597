package install

import (
	"context"
	"slices"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ErrInstallFailed indicates every attempted method failed or the user gave up.
var ErrInstallFailed = errors.New("installation failed")

// Prompter asks the user for decisions during an install session.
type Prompter interface {
	// SelectMethod picks one of options. ok is false when the user cancels.
	SelectMethod(t tool.Tool, options []MethodOption) (m tool.Method, ok bool, err error)
	// ConfirmRetry asks whether to try another method after failed did not work.
	ConfirmRetry(t tool.Tool, failed tool.Method, cause error) (bool, error)
}

// State is a node of the install state machine.
type State string

const (
	StateSelect      State = "select"
	StateExecute     State = "execute"
	StateAskRetry    State = "ask-retry"
	StateDoneSuccess State = "done-success"
	StateDoneFailure State = "done-failure"
	// StateCancelled is reached when the user declines the first selection.
	StateCancelled State = "cancelled"
	// StateAlreadyInstalled is reached when the binary is present before any attempt.
	StateAlreadyInstalled State = "already-installed"
)

// Attempt is one executed method.
type Attempt struct {
	Report Report
	Err    error
}

// Result summarizes a session.
type Result struct {
	Tool     tool.Tool
	State    State
	Attempts []Attempt
	// Version is set when the tool was already installed.
	Version string
}

// Succeeded reports whether the session ended with the tool installed.
func (r Result) Succeeded() bool {
	return r.State == StateDoneSuccess || r.State == StateAlreadyInstalled
}

// SessionOptions tune a Session.
type SessionOptions struct {
	// SkipMethodSelection installs with npm directly, without prompting or retrying.
	SkipMethodSelection bool
	// Force installs even when the binary is already on PATH.
	Force bool
}

// Session runs the select, execute, ask-retry loop for one tool.
type Session struct {
	exec     *Executor
	env      Environment
	prompter Prompter
	opts     SessionOptions
}

// NewSession creates a Session.
func NewSession(exec *Executor, env Environment, p Prompter, opts SessionOptions) *Session {
	return &Session{exec: exec, env: env, prompter: p, opts: opts}
}

// Run installs t. It returns ErrInstallFailed (wrapping the last command
// error) when the session ends in StateDoneFailure. Every method is
// executed at most once, so the loop ends after at most as many rounds as
// there are available methods.
func (s *Session) Run(ctx context.Context, t tool.Tool) (Result, error) {
	info, ok := tool.Lookup(t)
	if !ok {
		return Result{}, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	logger := logging.FromContext(ctx).With("tool", t)
	result := Result{Tool: t}

	if !s.opts.Force && s.env.CommandExists(ctx, info.Binary) {
		result.State = StateAlreadyInstalled
		result.Version, _ = s.exec.DetectVersion(ctx, t)
		return result, nil
	}

	if s.opts.SkipMethodSelection {
		report, err := s.exec.Install(ctx, tool.NPM, t)
		result.Attempts = append(result.Attempts, Attempt{Report: report, Err: err})
		if err != nil {
			result.State = StateDoneFailure
			return result, errors.Mark(err, ErrInstallFailed)
		}
		result.State = StateDoneSuccess
		return result, nil
	}

	var (
		excluded []tool.Method
		lastErr  error
		state    = StateSelect
		choice   tool.Method
	)
	for {
		logger.Debug("install state", "state", state, "excluded", excluded)
		switch state {
		case StateSelect:
			options := s.remaining(t, excluded)
			if len(options) == 0 {
				state = StateDoneFailure
				continue
			}
			m, ok, err := s.prompter.SelectMethod(t, options)
			if err != nil {
				return result, errors.Wrap(err, "selecting install method")
			}
			if !ok {
				if len(result.Attempts) == 0 {
					result.State = StateCancelled
					return result, nil
				}
				state = StateDoneFailure
				continue
			}
			if !slices.ContainsFunc(options, func(o MethodOption) bool { return o.Method == m }) {
				return result, errors.NewValidationError("method", "%q is not an available install method for %s", m, info.DisplayName)
			}
			choice = m
			state = StateExecute

		case StateExecute:
			report, err := s.exec.Install(ctx, choice, t)
			result.Attempts = append(result.Attempts, Attempt{Report: report, Err: err})
			if err == nil {
				state = StateDoneSuccess
				continue
			}
			lastErr = err
			excluded = appendUnique(excluded, choice, report.Method)
			if ctx.Err() != nil {
				state = StateDoneFailure
				continue
			}
			state = StateAskRetry

		case StateAskRetry:
			retry, err := s.prompter.ConfirmRetry(t, choice, lastErr)
			if err != nil {
				return result, errors.Wrap(err, "confirming retry")
			}
			if retry {
				state = StateSelect
			} else {
				state = StateDoneFailure
			}

		case StateDoneSuccess:
			result.State = StateDoneSuccess
			return result, nil

		case StateDoneFailure:
			result.State = StateDoneFailure
			if lastErr == nil {
				return result, errors.Wrapf(ErrInstallFailed, "no install method left for %s", info.DisplayName)
			}
			return result, errors.Mark(errors.Wrapf(lastErr, "%s", ErrInstallFailed), ErrInstallFailed)
		}
	}
}

// remaining returns the available options minus excluded methods.
func (s *Session) remaining(t tool.Tool, excluded []tool.Method) []MethodOption {
	all := AvailableMethods(t, s.env.Platform(), s.env.IsWSL())
	out := all[:0:0]
	for _, o := range all {
		if !slices.Contains(excluded, o.Method) {
			out = append(out, o)
		}
	}
	return out
}

func appendUnique(list []tool.Method, ms ...tool.Method) []tool.Method {
	for _, m := range ms {
		if m != "" && !slices.Contains(list, m) {
			list = append(list, m)
		}
	}
	return list
}

// Attempted returns the methods tried, in order.
func (r Result) Attempted() []tool.Method {
	out := make([]tool.Method, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		out = append(out, a.Report.Requested)
	}
	return out
}
