package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxLogSize triggers rotation of an existing log file on open
const maxLogSize = 10 * 1024 * 1024

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging builds the process logger
// With a path, output goes to that file (rotated when oversized); otherwise to fallback
func setupLogging(path string, verbose bool, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)
	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return log, closer, nil
}

// openLogFile opens path for append, first moving an oversized file aside
// The rotated file keeps the extension with a timestamp before it
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		stamp := time.Now().Format("20060102-150405")
		rotated := strings.TrimSuffix(path, ext) + "-" + stamp + ext
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
