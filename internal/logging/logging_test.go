package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			l := New(&bytes.Buffer{}, tc.level, "test")
			if got := l.GetLevel(); got != tc.expected {
				t.Errorf("GetLevel() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "reflex")
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "reflex") {
		t.Errorf("warn message missing or unprefixed: %q", out)
	}
}

func TestFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reflex.log")
	cfg := config.LoggingConfig{Level: "info", File: path}

	for _, msg := range []string{"first", "second"} {
		l, closer, err := File(cfg, "reflex")
		if err != nil {
			t.Fatalf("File() failed: %v", err)
		}
		l.Info(msg)
		closer.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file = %q, expected both messages", data)
	}
}
