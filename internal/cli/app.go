// Package cli wires zcf's stores, probes and executors for the command
// line.
package cli

import (
	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/install"
	"github.com/thoreinstein/zcf/internal/mcp"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/profile"
	"github.com/thoreinstein/zcf/internal/runner"
	"github.com/thoreinstein/zcf/internal/settings"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ErrCommandsUnsupported is returned for tools without a custom command
// registry in their settings.
var ErrCommandsUnsupported = errors.New("custom commands are only stored in Gemini settings")

// App holds the shared dependencies of every command.
type App struct {
	Config  *config.Config
	Runner  runner.Runner
	Probe   *probe.Probe
	Backups *backup.Manager
}

// NewApp builds the default dependencies for cfg. A nil cfg uses
// config.Default.
func NewApp(cfg *config.Config, version string) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	r := runner.New()
	return &App{
		Config: cfg,
		Runner: r,
		Probe:  probe.New(probe.OS{}, r),
		Backups: backup.NewManager(
			backup.WithRetentionCount(cfg.Backup.Retention),
			backup.WithVersion(version),
		),
	}
}

func (a *App) toolDir(t tool.Tool) string {
	return a.Config.ConfigDir(string(t))
}

// Executor returns the install executor.
func (a *App) Executor() *install.Executor {
	return install.NewExecutor(a.Probe, a.Runner,
		install.WithRecords(install.DefaultRecords(a.toolDir(tool.Gemini))))
}

// Session returns an install session prompting through p.
func (a *App) Session(p install.Prompter, force bool) *install.Session {
	return install.NewSession(a.Executor(), a.Probe, p, install.SessionOptions{
		SkipMethodSelection: a.Config.Install.SkipMethodSelection,
		Force:               force,
	})
}

// Purger returns the purge runner.
func (a *App) Purger() *install.Purger {
	return install.NewPurger(a.Executor(), a.Backups)
}

// PurgeOptions returns opts with the tool directory override applied.
func (a *App) PurgeOptions(t tool.Tool, opts install.PurgeOptions) install.PurgeOptions {
	if opts.Dir == "" {
		opts.Dir = a.toolDir(t)
	}
	return opts
}

// Settings returns t's settings store.
func (a *App) Settings(t tool.Tool) *settings.Store {
	return settings.NewStore(t, a.toolDir(t),
		settings.WithBackups(a.Backups),
		settings.WithDefaults(settings.DefaultOptions{Language: a.Config.Language}))
}

// MCP returns t's MCP server registry. Claude keeps user servers in
// ~/.claude.json rather than settings.json.
func (a *App) MCP(t tool.Tool) *mcp.Registry {
	wrap := mcp.WithCommandWrapper(a.Probe)
	if t == tool.Claude {
		return mcp.NewRegistry(t, settings.NewClaudeStateStore(settings.WithBackups(a.Backups)), wrap)
	}
	return mcp.NewRegistry(t, a.Settings(t), wrap)
}

// Commands returns t's custom command registry.
func (a *App) Commands(t tool.Tool) (*settings.Commands, error) {
	if t != tool.Gemini {
		return nil, errors.NewValidationError("tool", "%s: %v", t, ErrCommandsUnsupported)
	}
	return settings.NewCommands(a.Settings(t)), nil
}

// Profiles returns t's profile store.
func (a *App) Profiles(t tool.Tool) *profile.Store {
	return profile.NewStore(t, profile.WithBackups(a.Backups))
}

// Applier returns the profile applier writing through the configured
// settings stores.
func (a *App) Applier() *profile.Applier {
	opts := make([]profile.ApplierOption, 0, 4)
	for _, t := range tool.All() {
		opts = append(opts, profile.WithStore(a.Settings(t)))
	}
	opts = append(opts, profile.WithCodexAuthFile(paths.CodexAuthFile(a.toolDir(tool.Codex))))
	return profile.NewApplier(opts...)
}

// BackupFiles lists the files a manual backup of t covers: its settings
// and context files, the Codex credentials, Claude's ~/.claude.json and
// the shared profiles file.
func (a *App) BackupFiles(t tool.Tool) []string {
	dir := a.toolDir(t)
	files := []string{
		paths.SettingsFile(string(t), dir),
		paths.ContextFile(string(t), dir),
	}
	switch t {
	case tool.Codex:
		files = append(files, paths.CodexAuthFile(dir))
	case tool.Claude:
		files = append(files, paths.ClaudeRecordFile())
	}
	return append(files, paths.ProfilesFile())
}
