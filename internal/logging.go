package internal

import (
	"io"
	"log/slog"
	"sync"
)

// LogTee writes everything to a base writer and, once attached, to a second
// writer such as the in-window log panel.
type LogTee struct {
	mu    sync.Mutex
	base  io.Writer
	extra io.Writer
}

// NewLogTee creates a tee writing to base.
func NewLogTee(base io.Writer) *LogTee {
	return &LogTee{base: base}
}

// Attach sets the second writer. Passing nil detaches it.
func (t *LogTee) Attach(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.extra = w
}

// Write implements io.Writer. Errors of the attached writer are ignored.
func (t *LogTee) Write(p []byte) (int, error) {
	t.mu.Lock()
	extra := t.extra
	t.mu.Unlock()

	if extra != nil {
		extra.Write(p)
	}
	if t.base == nil {
		return len(p), nil
	}
	return t.base.Write(p)
}

// NewLogger returns a text logger writing to w, at debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
