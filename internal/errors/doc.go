// Package errors provides error handling conventions for the zcf CLI.
//
// The package re-exports the wrapping helpers of cockroachdb/errors so
// callers import a single errors package, and defines the error taxonomy
// used across the installer and configuration layers:
//
//   - [ErrValidation]: bad user input (missing field, duplicate name)
//   - [ErrNotFound]: a tool, profile, server or command does not exist
//   - [ErrExecution]: an external command exited non-zero or could not start
//   - [ErrConfigIO]: a settings or profile file is unreadable or corrupt
//
// Typed errors ([ValidationError], [ExecutionError]) carry details and
// unwrap to their sentinel, so callers match with [errors.Is]:
//
//	if errors.Is(err, zcferrors.ErrValidation) {
//	    // surface to the user, never retry
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, subprocess, permissions, etc.)
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion printed by the CLI entry point.
package errors
