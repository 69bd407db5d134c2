package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by the vertex array, manifest and CLI layers.
// Nothing is logged by default. Passing nil restores the silent logger.
//
// Log levels used:
//   - slog.LevelDebug: per-binding layout decisions, inferred vertex counts
//   - slog.LevelInfo: manifests loaded, vertex arrays assembled
//   - slog.LevelWarn: attributes skipped because they are unknown to the program
//
// Parameters:
//   - l: the logger to use, or nil
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current shared logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
