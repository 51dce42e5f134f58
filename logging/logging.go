// Package logging sets up the session's structured log file
// The terminal owns stdout and stderr while a session runs, so logs only ever go to a file
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	FileName   = "fabviz.log"
	MaxLogSize = 10 * 1024 * 1024 // rotate the previous file beyond this
)

// Options mirrors config.LoggingConfig
type Options struct {
	Enabled bool
	Level   string
	Dir     string
}

// nopCloser is returned when logging is disabled
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns a JSON logger writing to <Dir>/fabviz.log, or a discarding logger when disabled
// The returned closer must be called on exit
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	if !opts.Enabled {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create dir: %w", err)
	}

	path := filepath.Join(opts.Dir, FileName)
	if err := rotate(path); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open: %w", err)
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	logger := slog.New(h)
	logger.Info("session started", "pid", os.Getpid())
	return logger, f, nil
}

// rotate moves an oversized log aside with a timestamp suffix
func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= MaxLogSize {
		return nil
	}
	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s.%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("logging: rotate: %w", err)
	}
	return nil
}

// ParseLevel maps debug/info/warn/error to slog levels; unknown values are info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
