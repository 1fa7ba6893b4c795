package app

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger builds the application logger. The terminal belongs to the
// UI, so logs go to a file under $XDG_STATE_HOME/fathom (falling back
// to the temp dir). A logger always comes back; when no log file can be
// opened it just discards.
func NewLogger(level string) (*log.Logger, func()) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}

	w, closeFn := openLogFile()
	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return logger, closeFn
}

func openLogFile() (io.Writer, func()) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "state")
		} else {
			dir = os.TempDir()
		}
	}
	dir = filepath.Join(dir, "fathom")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "fathom.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
