package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/tool"
)

// CommandFinder reports whether a command can be run. *probe.Probe
// satisfies it.
type CommandFinder interface {
	CommandExists(ctx context.Context, name string) bool
}

// BinaryCheck reports which tool CLIs are installed and whether npm is
// available for the fallback install method.
type BinaryCheck struct {
	finder CommandFinder
	tools  []tool.Tool
}

var _ Check = (*BinaryCheck)(nil)

// NewBinaryCheck looks up each tool's binary with finder.
func NewBinaryCheck(finder CommandFinder, tools ...tool.Tool) *BinaryCheck {
	return &BinaryCheck{finder: finder, tools: tools}
}

func (c *BinaryCheck) Name() string     { return "binaries" }
func (c *BinaryCheck) Category() string { return "cli" }

func (c *BinaryCheck) Run(ctx context.Context) *CheckResult {
	details := map[string]any{}
	var missing []string
	for _, t := range c.tools {
		info := tool.MustInfo(t)
		found := c.finder.CommandExists(ctx, info.Binary)
		details[info.Binary] = found
		if !found {
			missing = append(missing, info.Binary)
		}
	}
	npm := c.finder.CommandExists(ctx, "npm")
	details["npm"] = npm

	switch {
	case len(missing) == len(c.tools) && !npm:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no tool CLI is installed and npm was not found",
			Details:  details,
			FixHint:  "Install Node.js, then run: zcf install",
		}
	case len(missing) > 0:
		r := &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "not installed: " + strings.Join(missing, ", "),
			Details:  details,
			FixHint:  "zcf install --tool <tool>",
		}
		if !npm {
			r.Message += " (npm not found)"
		}
		return r
	}
	r := passed(c.Name(), c.Category(), fmt.Sprintf("%d tool CLI(s) installed", len(c.tools)))
	r.Details = details
	return r
}

// Environment is the platform information PlatformCheck reports.
// *probe.Probe satisfies it.
type Environment interface {
	Platform() probe.Platform
	IsRestrictedShell() bool
	WSLInfo() (probe.WSLInfo, bool)
	RequiresElevatedInstall() bool
}

// PlatformCheck describes the detected platform. It never fails.
type PlatformCheck struct {
	env Environment
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck reports on env.
func NewPlatformCheck(env Environment) *PlatformCheck {
	return &PlatformCheck{env: env}
}

func (c *PlatformCheck) Name() string     { return "platform" }
func (c *PlatformCheck) Category() string { return "cli" }

func (c *PlatformCheck) Run(_ context.Context) *CheckResult {
	platform := c.env.Platform()
	details := map[string]any{"platform": string(platform)}
	parts := []string{string(platform)}

	if info, ok := c.env.WSLInfo(); ok {
		details["wsl"] = info.Distro
		parts = append(parts, "WSL "+info.Distro)
	}
	if c.env.IsRestrictedShell() {
		details["restricted_shell"] = true
		parts = append(parts, "Termux")
	}

	r := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Message:  "running on " + strings.Join(parts, ", "),
		Details:  details,
	}
	if c.env.RequiresElevatedInstall() {
		details["sudo"] = true
		r.Message += "; global npm installs use sudo"
	}
	return r
}
