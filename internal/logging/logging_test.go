// Package logging provides tests for console logger construction.
package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"fatal", "fatal", log.FatalLevel},
		{"mixed case", " DEBUG ", log.DebugLevel},
		{"unknown defaults to warn", "unknown", log.WarnLevel},
		{"empty defaults to warn", "", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.level)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   log.Formatter
	}{
		{"json", "json", log.JSONFormatter},
		{"logfmt", "logfmt", log.LogfmtFormatter},
		{"text", "text", log.TextFormatter},
		{"unknown defaults to text", "unknown", log.TextFormatter},
		{"empty defaults to text", "", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFormatter(tt.format)
			if got != tt.want {
				t.Errorf("ParseFormatter(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Level != log.WarnLevel {
		t.Errorf("Level = %v, want %v", opts.Level, log.WarnLevel)
	}
	if opts.Formatter != log.TextFormatter {
		t.Errorf("Formatter = %v, want %v", opts.Formatter, log.TextFormatter)
	}
	if opts.ReportTimestamp || opts.ReportCaller {
		t.Error("timestamps and caller should be off by default")
	}
	if opts.Prefix != DefaultPrefix {
		t.Errorf("Prefix = %q, want %q", opts.Prefix, DefaultPrefix)
	}
}

func TestFromConfigRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "info", "text", false, false)

	logger.Debug("hidden message")
	logger.Info("visible message", "task_id", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "task_id=abc") {
		t.Errorf("info line missing or without fields: %q", out)
	}
}

func TestFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "debug", "json", false, false)
	logger.Debug("saved", "path", "/tmp/tasks.json")

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected JSON line, got %q", out)
	}
	if !strings.Contains(out, `"path":"/tmp/tasks.json"`) {
		t.Errorf("expected path field, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Discard() returned nil")
	}
	// Must not panic or write anywhere.
	logger.Error("dropped")
}

func TestValidLevelAndFormat(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "fatal"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	if ValidLevel("verbose") {
		t.Error(`ValidLevel("verbose") = true`)
	}
	for _, format := range []string{"text", "json", "logfmt"} {
		if !ValidFormat(format) {
			t.Errorf("ValidFormat(%q) = false", format)
		}
	}
	if ValidFormat("xml") {
		t.Error(`ValidFormat("xml") = true`)
	}
}
