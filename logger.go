package gg4d

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Render workers read it while
// SetLogger may replace it.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gg4d and its sub-packages.
// By default, gg4d produces no log output. Pass nil to restore silence.
//
// Messages emitted by gg4d:
//   - "gg4d: render" at [slog.LevelDebug], once per Render call, with the
//     projection mode, chunk and fragment counts and the elapsed time
//   - "gg4d: dedup" at [slog.LevelDebug], once per Dedup call, with node
//     counts before and after and the number of dropped primitives
//   - "gg4d: dropping edge with dangling index" and the face equivalent at
//     [slog.LevelWarn], once per primitive Dedup discards
//   - "config: built mesh" at [slog.LevelDebug] from the config package
//
// Example:
//
//	gg4d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
