// Package logging builds the charmbracelet loggers used across reflex.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex/internal/config"
)

// New returns a timestamped logger writing to w. An unknown level falls
// back to info.
func New(w io.Writer, level, prefix string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// Stderr returns a logger for plain commands and the SSH server.
func Stderr(cfg config.LoggingConfig, prefix string) *log.Logger {
	return New(os.Stderr, cfg.Level, prefix)
}

// File opens the configured log file in append mode and returns a logger
// writing to it. Interactive play must not log to the terminal it draws on.
// The caller closes the returned file.
func File(cfg config.LoggingConfig, prefix string) (*log.Logger, io.Closer, error) {
	path, err := config.Expand(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return New(io.Discard, cfg.Level, prefix), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}
	return New(f, cfg.Level, prefix), f, nil
}
