// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Level maps -v / -vv style verbosity to a slog level.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Setup installs the default logger and returns a close func. Logs go to
// path when set (appended, with a start banner), otherwise to fallback.
// Interactive commands pass io.Discard so nothing draws over the TUI.
func Setup(path string, verbosity int, fallback io.Writer, version string) (func() error, error) {
	w := fallback
	closer := func() error { return nil }
	if path != "" {
		f, err := openLogFile(path, version)
		if err != nil {
			return closer, err
		}
		w, closer = f, f.Close
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(verbosity)})
	slog.SetDefault(slog.New(h))
	return closer, nil
}

func openLogFile(path, version string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	_, _ = fmt.Fprintf(f, "=== wmark %s started at %s ===\n", version, time.Now().Format(time.RFC3339))
	return f, nil
}
