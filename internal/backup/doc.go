// Package backup snapshots tool configuration files before zcf changes
// them, and restores those snapshots on request.
//
// Each backup is a timestamped directory holding copies of the files and a
// manifest.json with their original locations, permissions and SHA256
// hashes:
//
//	<config>/zcf/backups/
//	└── {tool}/
//	    └── {20060102T150405}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// Restore verifies every hash before writing anything back, and snapshots
// the current files first so a restore can itself be undone.
package backup
