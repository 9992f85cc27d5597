package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used for zcf's own state.
const AppName = "zcf"

// Tool identifiers. These mirror the tool package's ids; paths stays a leaf
// package so it cannot import tool.
const (
	ToolClaude = "claude-code"
	ToolCodex  = "codex"
	ToolGemini = "gemini"
)

type toolLayout struct {
	dir      string
	settings string
	context  string
}

var toolLayouts = map[string]toolLayout{
	ToolClaude: {dir: ".claude", settings: "settings.json", context: "CLAUDE.md"},
	ToolCodex:  {dir: ".codex", settings: "config.toml", context: "AGENTS.md"},
	ToolGemini: {dir: ".gemini", settings: "settings.json", context: "GEMINI.md"},
}

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the permission for directories zcf creates.
const DefaultDirPerm = 0o700

// EnsureDir creates path and its parents. A zero perm means DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrapf(ErrHomeDirNotFound, "%v", err)
	}
	return home, nil
}

// Home returns the home directory, or "" when it cannot be determined.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// Reload re-reads the XDG environment variables.
func Reload() {
	xdg.Reload()
}

// ConfigHome returns the XDG config home.
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home.
func CacheHome() string {
	return xdg.CacheHome
}

// AppConfigDir returns <ConfigHome>/zcf.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// AppConfigFile returns <ConfigHome>/zcf/config.yaml.
func AppConfigFile() string {
	return filepath.Join(AppConfigDir(), "config.yaml")
}

// ProfilesFile returns <ConfigHome>/zcf/profiles.json.
func ProfilesFile() string {
	return filepath.Join(AppConfigDir(), "profiles.json")
}

// BackupRoot returns <ConfigHome>/zcf/backups.
func BackupRoot() string {
	return filepath.Join(AppConfigDir(), "backups")
}

// ValidTool reports whether id names a managed tool.
func ValidTool(id string) bool {
	_, ok := toolLayouts[id]
	return ok
}

// ToolDir returns the tool's home-relative configuration directory.
func ToolDir(id string) string {
	l, ok := toolLayouts[id]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, l.dir)
}

// SettingsFile returns the tool's settings document path inside dir.
// An empty dir means ToolDir(id).
func SettingsFile(id, dir string) string {
	l, ok := toolLayouts[id]
	if !ok {
		return ""
	}
	if dir == "" {
		dir = ToolDir(id)
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, l.settings)
}

// ContextFile returns the tool's global instruction file inside dir.
// An empty dir means ToolDir(id).
func ContextFile(id, dir string) string {
	l, ok := toolLayouts[id]
	if !ok {
		return ""
	}
	if dir == "" {
		dir = ToolDir(id)
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, l.context)
}

// ClaudeRecordFile returns ~/.claude.json, where Claude keeps installMethod.
func ClaudeRecordFile() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".claude.json")
}

// ClaudeLocalBinary returns ~/.claude/local/claude.
func ClaudeLocalBinary() string {
	dir := ToolDir(ToolClaude)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "local", "claude")
}

// CodexAuthFile returns auth.json inside dir, or ~/.codex when dir is empty.
func CodexAuthFile(dir string) string {
	if dir == "" {
		dir = ToolDir(ToolCodex)
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "auth.json")
}
