// Package install resolves, runs and retries installation methods for the
// managed tools.
//
// The package has three layers:
//
//   - The method catalog ([RecommendedMethods], [AvailableMethods],
//     [Resolve]) is a static table keyed by tool and platform.
//   - The [Executor] runs exactly one external command per install or
//     uninstall and persists the installation record.
//   - A [Session] drives the select, execute, ask-retry loop until an
//     install succeeds or the user gives up. Every method is tried at most
//     once per session.
//
// Requesting a method a tool does not support resolves to npm before
// anything runs. [Resolve] reports when that happened so callers can tell
// the user.
package install
