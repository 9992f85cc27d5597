// Package tool describes the AI coding assistants zcf manages and the
// methods that can install them.
package tool

import (
	"slices"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/probe"
)

// Tool identifies a managed CLI.
type Tool string

const (
	Claude Tool = paths.ToolClaude
	Codex  Tool = paths.ToolCodex
	Gemini Tool = paths.ToolGemini
)

// All lists the managed tools in display order.
func All() []Tool {
	return []Tool{Claude, Codex, Gemini}
}

// Method is a way of obtaining a tool's binary.
type Method string

const (
	// NPM is the language package manager, available everywhere.
	NPM Method = "npm"
	// Homebrew is the system package manager on macOS and Linux.
	Homebrew Method = "homebrew"
	// Curl runs the POSIX install script.
	Curl Method = "curl"
	// PowerShell runs the Windows PowerShell install script.
	PowerShell Method = "powershell"
	// CMD runs the legacy Windows cmd install script.
	CMD Method = "cmd"

	// Manual removes the binary directly. Only produced by uninstall resolution.
	Manual Method = "manual"

	// legacyNPM and Native appear in records written by older installers.
	legacyNPM Method = "npm-global"
	Native    Method = "native"
)

// Methods lists every install method in catalog order.
func Methods() []Method {
	return []Method{NPM, Homebrew, Curl, PowerShell, CMD}
}

// ParseMethod converts a record or flag value to a Method. Legacy values are
// accepted: npm-global maps to NPM, native is kept for uninstall resolution.
func ParseMethod(s string) (Method, bool) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case NPM, Homebrew, Curl, PowerShell, CMD, Native, Manual:
		return m, true
	case legacyNPM:
		return NPM, true
	default:
		return "", false
	}
}

// AvailableOn reports whether m can run on platform. WSL hosts run curl.
func (m Method) AvailableOn(p probe.Platform, wsl bool) bool {
	switch m {
	case Homebrew:
		return p == probe.MacOS || p == probe.Linux
	case Curl:
		return p != probe.Windows || wsl
	case PowerShell, CMD:
		return p == probe.Windows
	case NPM:
		return true
	default:
		return false
	}
}

// Info is the static description of a tool.
type Info struct {
	Tool        Tool
	DisplayName string
	// Binary is the command the tool installs on PATH.
	Binary string
	// NPMPackage is the global npm package.
	NPMPackage string
	// BrewName is the Homebrew formula or cask.
	BrewName string
	// BrewCask is true when BrewName is a cask.
	BrewCask bool
	// Local reports whether the tool supports a non-global install.
	Local bool
	// Supported lists the install methods the tool can use.
	Supported []Method
	// RecordsMethod is false for tools that keep no install history.
	RecordsMethod bool
}

var catalog = map[Tool]Info{
	Claude: {
		Tool:          Claude,
		DisplayName:   "Claude Code",
		Binary:        "claude",
		NPMPackage:    "@anthropic-ai/claude-code",
		BrewName:      "claude-code",
		BrewCask:      true,
		Local:         true,
		Supported:     []Method{NPM, Homebrew, Curl, PowerShell, CMD},
		RecordsMethod: true,
	},
	Codex: {
		Tool:        Codex,
		DisplayName: "Codex",
		Binary:      "codex",
		NPMPackage:  "@openai/codex",
		BrewName:    "codex",
		Supported:   []Method{NPM, Homebrew},
	},
	Gemini: {
		Tool:          Gemini,
		DisplayName:   "Gemini CLI",
		Binary:        "gemini",
		NPMPackage:    "@google/gemini-cli",
		BrewName:      "gemini-cli",
		Supported:     []Method{NPM, Homebrew},
		RecordsMethod: true,
	},
}

// Parse converts a tool id or common alias to a Tool.
func Parse(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "claude-code", "claude", "cc":
		return Claude, nil
	case "codex", "cx":
		return Codex, nil
	case "gemini", "gemini-cli":
		return Gemini, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownTool, "%q (valid: claude-code, codex, gemini)", s)
}

// Lookup returns the static description of t.
func Lookup(t Tool) (Info, bool) {
	info, ok := catalog[t]
	return info, ok
}

// MustInfo returns the description of a known tool and panics otherwise.
func MustInfo(t Tool) Info {
	info, ok := catalog[t]
	if !ok {
		panic("tool: unknown tool " + string(t))
	}
	return info
}

// Supports reports whether t can be installed with m.
func (i Info) Supports(m Method) bool {
	return slices.Contains(i.Supported, m)
}

func (t Tool) String() string {
	return string(t)
}
