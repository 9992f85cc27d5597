package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestResolveHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolveHome()
	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
		return
	}
	if got != home {
		t.Errorf("ResolveHome() = %q, want %q", got, home)
	}
}

func TestAppDirs(t *testing.T) {
	for name, fn := range map[string]func() string{
		"AppConfigDir":  AppConfigDir,
		"AppConfigFile": AppConfigFile,
		"ProfilesFile":  ProfilesFile,
		"BackupRoot":    BackupRoot,
	} {
		got := fn()
		if !filepath.IsAbs(got) {
			t.Errorf("%s() = %q, want absolute path", name, got)
		}
		if !strings.HasPrefix(got, ConfigHome()) {
			t.Errorf("%s() = %q, want path under %q", name, got, ConfigHome())
		}
	}
	if filepath.Base(ProfilesFile()) != "profiles.json" {
		t.Errorf("ProfilesFile() = %q", ProfilesFile())
	}
}

func TestToolPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtimeHome, _ := os.UserHomeDir(); runtimeHome != home {
		t.Skip("HOME override not honored on this platform")
	}

	tests := []struct {
		tool         string
		wantDir      string
		wantSettings string
		wantContext  string
	}{
		{ToolClaude, ".claude", "settings.json", "CLAUDE.md"},
		{ToolCodex, ".codex", "config.toml", "AGENTS.md"},
		{ToolGemini, ".gemini", "settings.json", "GEMINI.md"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			dir := filepath.Join(home, tt.wantDir)
			if got := ToolDir(tt.tool); got != dir {
				t.Errorf("ToolDir() = %q, want %q", got, dir)
			}
			if got := SettingsFile(tt.tool, ""); got != filepath.Join(dir, tt.wantSettings) {
				t.Errorf("SettingsFile() = %q", got)
			}
			if got := ContextFile(tt.tool, ""); got != filepath.Join(dir, tt.wantContext) {
				t.Errorf("ContextFile() = %q", got)
			}
			if got := SettingsFile(tt.tool, "/custom"); got != filepath.Join("/custom", tt.wantSettings) {
				t.Errorf("SettingsFile(override) = %q", got)
			}
		})
	}

	if got := ClaudeRecordFile(); got != filepath.Join(home, ".claude.json") {
		t.Errorf("ClaudeRecordFile() = %q", got)
	}
	if got := ClaudeLocalBinary(); got != filepath.Join(home, ".claude", "local", "claude") {
		t.Errorf("ClaudeLocalBinary() = %q", got)
	}
	if got := CodexAuthFile(""); got != filepath.Join(home, ".codex", "auth.json") {
		t.Errorf("CodexAuthFile() = %q", got)
	}
}

func TestUnknownTool(t *testing.T) {
	if ValidTool("vim") {
		t.Error("ValidTool(vim) = true")
	}
	if ToolDir("vim") != "" || SettingsFile("vim", "") != "" || ContextFile("vim", "/x") != "" {
		t.Error("unknown tool should resolve to empty paths")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir() not idempotent: %v", err)
	}
}
