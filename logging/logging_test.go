package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, "info", "json"), "progress")
	l.Warn("storage failure", "key", "run")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON line, got %q", buf.String())
	}
	if rec["component"] != "progress" {
		t.Errorf("expected component=progress, got %v", rec["component"])
	}
	if rec["key"] != "run" {
		t.Errorf("expected key=run, got %v", rec["key"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")
	l.Info("hidden")
	l.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info line to be filtered")
	}
	if !strings.Contains(out, "shown") {
		t.Error("expected warn line in output")
	}
}

func TestComponent_NilLogger(t *testing.T) {
	l := Component(nil, "anim")
	l.Error("dropped")
}
