package rdraw

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can run concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for rdraw.
// By default rdraw produces no log output. Pass nil to restore silence.
//
// Log levels used by rdraw:
//   - [slog.LevelDebug]: per-stroke statistics, skipped degenerate sub-paths
//   - [slog.LevelInfo]: renderer lifecycle (GPU pipeline creation)
//   - [slog.LevelWarn]: renderer failures
//
// Renderers created afterwards receive the logger through [NewCanvas] when
// they implement SetLogger(*slog.Logger).
//
// Example:
//
//	rdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by rdraw.
// Sub-packages call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by renderers that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to r if it accepts one.
func propagateLogger(r Renderer, l *slog.Logger) {
	if ls, ok := r.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
