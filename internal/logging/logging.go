// Package logging holds the process-wide structured logger used by segloss
// library code. Library packages never configure handlers themselves; the
// embedding program does that through SetLogger.
package logging

import (
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

// Logger returns the logger set with SetLogger, or slog.Default().
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger replaces the library logger. Passing nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	current.Store(l)
}
