package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, subprocess, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for the error taxonomy.
var (
	// ErrValidation indicates user input to a store failed validation.
	ErrValidation = crdb.New("validation failed")

	// ErrNotFound indicates the requested tool, profile, server or command was not found.
	ErrNotFound = crdb.New("not found")

	// ErrExecution indicates an external command failed or could not be spawned.
	ErrExecution = crdb.New("command execution failed")

	// ErrConfigIO indicates a configuration file could not be read, parsed or written.
	ErrConfigIO = crdb.New("configuration I/O failed")

	// ErrUnknownTool indicates the tool name is not one of the supported tools.
	ErrUnknownTool = crdb.New("unknown tool")
)

// Wrapping helpers re-exported from cockroachdb/errors.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Join   = crdb.Join
	Unwrap = crdb.Unwrap
	Mark   = crdb.Mark
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	// Field is the offending field name (e.g. "name", "apiKey").
	Field string

	// Message explains what is wrong with the field.
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ExecutionError records a failed external command.
type ExecutionError struct {
	// Command is the argv that was run.
	Command []string

	// ExitCode is the process exit code, or -1 if it never started.
	ExitCode int

	// Stdout and Stderr hold the captured output.
	Stdout string
	Stderr string

	// Err is the underlying spawn or wait error.
	Err error
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	b.WriteString(strings.Join(e.Command, " "))
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

// Unwrap returns ErrExecution. The spawn error stays available in Err.
func (e *ExecutionError) Unwrap() error {
	return ErrExecution
}

// NotFoundf creates an error wrapping ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return crdb.Wrapf(ErrNotFound, format, args...)
}

// ConfigIO wraps err with ErrConfigIO and a context message.
// Returns nil if err is nil.
func ConfigIO(err error, msg string) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(crdb.Wrap(err, msg), ErrConfigIO)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Classify maps err onto an ExitError using the taxonomy sentinels.
// Validation and not-found errors are user errors; everything else is a system error.
// An existing ExitError in the chain is returned unchanged.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr
	}
	switch {
	case crdb.Is(err, ErrValidation), crdb.Is(err, ErrNotFound), crdb.Is(err, ErrUnknownTool):
		return NewUserError(err, "")
	case crdb.Is(err, ErrConfigIO):
		return NewSystemError(err, "Run: zcf backup list to find a restorable copy")
	default:
		return NewSystemError(err, "")
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
