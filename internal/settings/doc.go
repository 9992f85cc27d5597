// Package settings reads, merges and writes the configuration documents
// of the managed tools.
//
// Documents are untyped maps so keys zcf does not know about survive a
// rewrite. Partial updates go through [Merge], which consults a per-tool
// [Schema] to decide whether a field is overwritten, merged recursively,
// or merged entry by entry.
package settings
