// Package logging sets up the diagnostic logger. The monitor owns the
// terminal, so diagnostics go to a file under the user's home directory
// instead of stdout/stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const dirName = ".vitals"

// Init opens ~/.vitals/vitals.log and returns a text-handler slog logger
// appending to it, plus the file for the caller to Close on shutdown.
// If the file cannot be opened, diagnostics are discarded rather than
// tearing the TUI.
func Init(level slog.Level) (*slog.Logger, *os.File) {
	home, err := os.UserHomeDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	path := filepath.Join(dir, "vitals.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f
}
