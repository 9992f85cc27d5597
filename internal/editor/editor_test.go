package editor

import (
	"errors"
	"testing"

	"github.com/thoreinstein/zcf/internal/runner/runnertest"
)

func newTestEditor(env map[string]string, nano bool) (*Editor, *runnertest.Fake) {
	fake := runnertest.New()
	e := New(fake)
	e.getenv = func(k string) string { return env[k] }
	e.lookPath = func(file string) (string, error) {
		if nano && file == "nano" {
			return "/usr/bin/nano", nil
		}
		return "", errors.New("not found")
	}
	e.goos = "linux"
	return e, fake
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		nano bool
		goos string
		want string
	}{
		{"editor wins", map[string]string{"EDITOR": "nvim", "VISUAL": "code"}, true, "", "nvim /cfg.yaml"},
		{"visual", map[string]string{"VISUAL": "code"}, true, "", "code /cfg.yaml"},
		{"blank editor falls through", map[string]string{"EDITOR": "  ", "VISUAL": "emacs"}, false, "", "emacs /cfg.yaml"},
		{"editor with args", map[string]string{"EDITOR": "code --wait"}, false, "", "code --wait /cfg.yaml"},
		{"nano fallback", nil, true, "", "nano /cfg.yaml"},
		{"vi fallback", nil, false, "", "vi /cfg.yaml"},
		{"windows fallback", nil, true, "windows", "notepad /cfg.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(tt.env, tt.nano)
			if tt.goos != "" {
				e.goos = tt.goos
			}
			cmd := e.Command("/cfg.yaml")
			if got := cmd.String(); got != tt.want {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
			if !cmd.Stream {
				t.Error("editor must run attached to the terminal")
			}
		})
	}
}

func TestOpen(t *testing.T) {
	e, fake := newTestEditor(map[string]string{"EDITOR": "nvim"}, false)
	fake.OK("nvim /cfg.yaml", "")

	if err := e.Open(t.Context(), "/cfg.yaml"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := fake.Count("nvim /cfg.yaml"); got != 1 {
		t.Errorf("editor ran %d times, want 1", got)
	}
}

func TestOpen_EditorFails(t *testing.T) {
	e, _ := newTestEditor(map[string]string{"EDITOR": "non-existent-binary-12345"}, false)

	err := e.Open(t.Context(), "/cfg.yaml")
	if err == nil {
		t.Fatal("expected error for a failing editor, got nil")
	}
}
