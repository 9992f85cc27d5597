package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"settings", []byte("{}\n"), 0o644},
		{"empty data", []byte{}, 0o644},
		{"credentials", []byte(`{"OPENAI_API_KEY":"sk-x"}`), 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gemini", "backup", "settings.json")

	if err := AtomicWriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestAtomicWriteFile_OverwriteLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(path, []byte("new"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
		wantErr  bool
	}{
		{
			name:     "map",
			value:    map[string]int{"count": 42},
			wantJSON: "{\n  \"count\": 42\n}\n",
		},
		{
			name:     "url is not escaped",
			value:    map[string]string{"url": "https://a.example/?x=1&y=2"},
			wantJSON: "{\n  \"url\": \"https://a.example/?x=1&y=2\"\n}\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.json")

			err := AtomicWriteJSON(path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if _, err := os.Stat(path); err == nil {
					t.Error("file should not exist after marshal error")
				}
				return
			}
			got, _ := os.ReadFile(path)
			if string(got) != tt.wantJSON {
				t.Errorf("content = %q, want %q", got, tt.wantJSON)
			}
		})
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	v := struct {
		DefaultTool string `yaml:"default_tool"`
	}{DefaultTool: "gemini"}
	if err := AtomicWriteYAML(path, v); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "default_tool: gemini\n" {
		t.Errorf("content = %q", got)
	}

	if err := AtomicWriteYAML(path, func() {}); err == nil {
		t.Error("expected error for unmarshalable value")
	}
}

func TestAtomicWriteTOMLWithPerm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	doc := map[string]any{
		"model": "gpt-5-codex",
		"model_providers": map[string]any{
			"kimi": map[string]any{"base_url": "https://api.example/v1"},
		},
	}
	if err := AtomicWriteTOMLWithPerm(path, doc, 0o600); err != nil {
		t.Fatalf("AtomicWriteTOMLWithPerm() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	for _, want := range []string{"model = 'gpt-5-codex'", "[model_providers.kimi]", "base_url = 'https://api.example/v1'"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("TOML output missing %q:\n%s", want, got)
		}
	}
}
