package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/profile"
	"github.com/thoreinstein/zcf/internal/settings"
	"github.com/thoreinstein/zcf/internal/tool"
)

// privateFilePerm is the widest mode allowed for files holding API keys.
const privateFilePerm os.FileMode = 0o600

// ConfigCheck validates zcf's own configuration file.
type ConfigCheck struct {
	path string
	load func(string) (*config.Config, error)
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck checks the config file at path, or the default search
// locations when path is empty. config.Init must have been called.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path, load: config.Load}
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	cfg, err := c.load(c.path)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  err.Error(),
			FixHint:  "Fix the file or run: zcf config init --force",
		}
	}
	r := passed(c.Name(), c.Category(), "configuration is valid")
	r.Details = map[string]any{"default_tool": cfg.DefaultTool, "language": cfg.Language}
	return r
}

// SettingsCheck parses every settings document zcf writes.
type SettingsCheck struct {
	stores []*settings.Store
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck checks the given settings stores.
func NewSettingsCheck(stores ...*settings.Store) *SettingsCheck {
	return &SettingsCheck{stores: stores}
}

func (c *SettingsCheck) Name() string     { return "settings-syntax" }
func (c *SettingsCheck) Category() string { return "settings" }

func (c *SettingsCheck) Run(_ context.Context) *CheckResult {
	broken := map[string]any{}
	var missing []string
	for _, s := range c.stores {
		_, err := s.Load()
		switch {
		case err == nil:
		case settings.IsMissing(err):
			missing = append(missing, s.Path())
		default:
			broken[s.Path()] = err.Error()
		}
	}

	if len(broken) > 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d settings file(s) cannot be parsed", len(broken)),
			Details:  broken,
			FixHint:  "Fix the syntax or restore a backup: zcf backup restore --tool <tool>",
		}
	}
	r := passed(c.Name(), c.Category(), fmt.Sprintf("%d settings file(s) parse", len(c.stores)-len(missing)))
	if len(missing) > 0 {
		r.Details = map[string]any{"not_created": missing}
	}
	return r
}

// ProfilesCheck validates the shared profiles file and its permissions.
type ProfilesCheck struct {
	PermissionFixer
	path string
	goos string
}

var (
	_ Check = (*ProfilesCheck)(nil)
	_ Fixer = (*ProfilesCheck)(nil)
)

// NewProfilesCheck checks the profiles file at path.
func NewProfilesCheck(path string) *ProfilesCheck {
	return &ProfilesCheck{path: path, goos: runtime.GOOS}
}

func (c *ProfilesCheck) Name() string     { return "profiles" }
func (c *ProfilesCheck) Category() string { return "profiles" }

func (c *ProfilesCheck) Run(_ context.Context) *CheckResult {
	c.setIssues(nil)

	info, err := os.Stat(c.path)
	if os.IsNotExist(err) {
		return passed(c.Name(), c.Category(), "no profiles configured")
	}
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot stat %s: %v", c.path, err),
		}
	}

	counts := map[string]any{}
	seen := map[string]bool{}
	var broken []string
	for _, t := range tool.All() {
		list, err := profile.NewStore(t, profile.WithPath(c.path)).List()
		if err != nil {
			// a syntax error is reported once, not per tool
			if msg := err.Error(); !seen[msg] {
				seen[msg] = true
				broken = append(broken, msg)
			}
			continue
		}
		counts[string(t)] = len(list)
	}
	if len(broken) > 0 {
		sort.Strings(broken)
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "profiles file cannot be parsed: " + strings.Join(broken, "; "),
			Details:  map[string]any{"path": c.path},
			FixHint:  "Restore a backup with: zcf backup restore",
		}
	}

	mode := info.Mode().Perm()
	if c.goos != "windows" && mode&^privateFilePerm != 0 {
		c.setIssues([]permIssue{{Path: c.path, Have: mode, Want: privateFilePerm}})
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("%s has mode %04o, want %04o", c.path, mode, privateFilePerm),
			Details:  counts,
			Fixable:  true,
			FixHint:  fmt.Sprintf("chmod 600 %s", c.path),
		}
	}

	r := passed(c.Name(), c.Category(), "profiles file is valid and private")
	r.Details = counts
	return r
}
