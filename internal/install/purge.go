package install

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/thoreinstein/zcf/internal/backup"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/tool"
)

// Component is one removable part of a tool's footprint.
type Component string

const (
	ComponentCLI         Component = "cli"
	ComponentSettings    Component = "settings"
	ComponentContext     Component = "context"
	ComponentAuth        Component = "auth"
	ComponentCache       Component = "cache"
	ComponentCheckpoints Component = "checkpoints"
)

// Components returns the parts t can have, in removal order.
func Components(t tool.Tool) []Component {
	switch t {
	case tool.Codex:
		return []Component{ComponentCLI, ComponentSettings, ComponentContext, ComponentAuth}
	case tool.Gemini:
		return []Component{ComponentCLI, ComponentSettings, ComponentContext, ComponentCache, ComponentCheckpoints}
	default:
		return []Component{ComponentCLI, ComponentSettings, ComponentContext}
	}
}

// PurgeOptions selects what Purge removes.
type PurgeOptions struct {
	// Dir overrides the tool's configuration directory.
	Dir string
	// Components limits removal. Empty means everything.
	Components []Component
	// Backup snapshots settings, context and auth files first.
	Backup bool
}

// PurgeReport lists what happened to each component. Components that
// were not present appear in neither list.
type PurgeReport struct {
	Removed []Component
	Failed  []Component
	// Backups holds the IDs of backups taken.
	Backups []string
	// Uninstall is set when the CLI removal ran.
	Uninstall *Outcome
}

// Succeeded reports whether nothing failed.
func (r PurgeReport) Succeeded() bool {
	return len(r.Failed) == 0
}

// Purger removes a tool and everything it wrote.
type Purger struct {
	exec    *Executor
	backups *backup.Manager
}

// NewPurger creates a Purger. backups may be nil when PurgeOptions.Backup
// is never set.
func NewPurger(exec *Executor, backups *backup.Manager) *Purger {
	return &Purger{exec: exec, backups: backups}
}

// componentPath returns the file or directory holding c, or "" for the CLI.
func componentPath(t tool.Tool, dir string, c Component) string {
	if dir == "" {
		dir = paths.ToolDir(string(t))
	}
	switch c {
	case ComponentSettings:
		return paths.SettingsFile(string(t), dir)
	case ComponentContext:
		return paths.ContextFile(string(t), dir)
	case ComponentAuth:
		return paths.CodexAuthFile(dir)
	case ComponentCache:
		return filepath.Join(dir, "cache")
	case ComponentCheckpoints:
		return filepath.Join(dir, "checkpoints")
	}
	return ""
}

// Purge removes the selected components of t. The backup, if requested,
// is taken before anything is removed and a backup failure aborts the
// purge. Individual removal failures are collected in the report; the
// returned error only covers problems that stopped the purge.
func (p *Purger) Purge(ctx context.Context, t tool.Tool, opts PurgeOptions) (PurgeReport, error) {
	var report PurgeReport
	info, ok := tool.Lookup(t)
	if !ok {
		return report, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	logger := logging.FromContext(ctx).With("tool", t)

	selected := Components(t)
	if len(opts.Components) > 0 {
		selected = slices.DeleteFunc(selected, func(c Component) bool {
			return !slices.Contains(opts.Components, c)
		})
	}

	if opts.Backup {
		id, err := p.backup(t, opts.Dir, selected)
		if err != nil {
			return report, err
		}
		if id != "" {
			report.Backups = append(report.Backups, id)
		}
	}

	for _, c := range selected {
		if c == ComponentCLI {
			if !p.exec.env.CommandExists(ctx, info.Binary) {
				continue
			}
			out, err := p.exec.Uninstall(ctx, t)
			report.Uninstall = &out
			if err != nil {
				logger.Warn("removing CLI failed", "error", err)
				report.Failed = append(report.Failed, c)
				continue
			}
			report.Removed = append(report.Removed, c)
			continue
		}

		path := componentPath(t, opts.Dir, c)
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			logger.Warn("removal failed", "component", c, "path", path, "error", err)
			report.Failed = append(report.Failed, c)
			continue
		}
		logger.Debug("removed", "component", c, "path", path)
		report.Removed = append(report.Removed, c)
	}

	removeIfEmpty(ctx, componentPath(t, opts.Dir, ComponentCache))
	return report, nil
}

func (p *Purger) backup(t tool.Tool, dir string, selected []Component) (string, error) {
	if p.backups == nil {
		return "", errors.New("backups are not configured")
	}
	var files []string
	for _, c := range selected {
		switch c {
		case ComponentSettings, ComponentContext, ComponentAuth:
			files = append(files, componentPath(t, dir, c))
		}
	}
	m, err := p.backups.Backup(string(t), "purge", files)
	if errors.Is(err, backup.ErrNothingToBackup) {
		return "", nil
	}
	if err != nil {
		return "", errors.ConfigIO(err, "backing up before purge")
	}
	return m.ID, nil
}

// removeIfEmpty deletes the tool directory containing sibling when it
// has nothing left in it, or only a legacy backup directory.
func removeIfEmpty(ctx context.Context, sibling string) {
	dir := filepath.Dir(sibling)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	if len(entries) > 1 || (len(entries) == 1 && entries[0].Name() != "backup") {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		logging.FromContext(ctx).Debug("leaving tool directory", "path", dir, "error", err)
	}
}
