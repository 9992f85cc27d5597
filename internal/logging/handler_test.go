package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("installing", "tool", "claude-code", "method", "npm")

	out := buf.String()
	for _, want := range []string{"INFO", "installing", "tool=claude-code", "method=npm", now.Format(time.Kitchen)} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output should end with newline: %q", out)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("tool", "codex").WithGroup("run")

	logger.Info("done", "attempt", 2)

	out := buf.String()
	if !strings.Contains(out, "tool=codex") {
		t.Errorf("expected inherited attr, got %q", out)
	}
	if !strings.Contains(out, "run.attempt=2") {
		t.Errorf("expected grouped attr, got %q", out)
	}
}

func TestHandler_GroupValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("probe", slog.Group("platform", "os", "linux", "wsl", true))

	if out := buf.String(); !strings.Contains(out, "platform.os=linux") || !strings.Contains(out, "platform.wsl=true") {
		t.Errorf("group attrs not flattened: %q", out)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Info should be disabled at Warn")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Error should be enabled at Warn")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "INFO") {
		t.Errorf("expected output to start with level, got %q", got)
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("profile applied", "ANTHROPIC_API_KEY", "secret12345", "note", "sk-ant-abcdef")

	out := buf.String()
	if strings.Contains(out, "secret12345") || strings.Contains(out, "sk-ant-abcdef") {
		t.Errorf("secrets leaked: %q", out)
	}
	if !strings.Contains(out, "ANTHROPIC_API_KEY=****2345") {
		t.Errorf("expected masked key, got %q", out)
	}
	if !strings.Contains(out, "note=****cdef") {
		t.Errorf("expected masked prefix value, got %q", out)
	}
}
