// Package profile keeps named API profiles for each managed tool and
// materializes the current one into the tool's settings.
//
// Profiles live in a single JSON file keyed by tool id. Within a tool
// the profiles keep their insertion order, which decides the new current
// profile when the current one is deleted.
package profile
