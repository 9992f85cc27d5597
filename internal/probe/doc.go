// Package probe answers questions about the host zcf runs on.
//
// A [Probe] reports the OS family, WSL and Termux detection, whether a
// command is on PATH, and whether a global npm install needs sudo. All
// queries read from an injectable [System], so tests run the Linux, macOS
// and Windows branches on any host. A Probe holds no mutable state and is
// safe for concurrent use.
package probe
