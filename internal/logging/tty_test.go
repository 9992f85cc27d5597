package logging

import (
	"os"
	"testing"
)

func TestColorAllowed(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"NO_COLOR disables", map[string]string{"NO_COLOR": "1"}, true, false},
		{"TERM=dumb disables", map[string]string{"TERM": "dumb"}, true, false},
		{"non-TTY disables", nil, false, false},
		{"TTY enables", map[string]string{"TERM": "xterm-256color"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			os.Unsetenv("NO_COLOR")
			t.Setenv("TERM", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := colorAllowed(tt.isTTY); got != tt.want {
				t.Errorf("colorAllowed(%v) = %v, want %v", tt.isTTY, got, tt.want)
			}
		})
	}
}

type plainWriter struct{}

func (plainWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(plainWriter{}) {
		t.Error("IsTTY should be false for a writer without Fd")
	}
}
