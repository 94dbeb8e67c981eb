package semantics

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Lightweight, opt-in tracing of valuations. Enable by setting env var
// LOGICS_VALUATION_TRACE=1 or by calling EnableTrace. Records go to the
// logger installed with SetLogger, slog.Default otherwise, at debug level.

var (
	traceEnabled atomic.Bool
	traceLogger  atomic.Pointer[slog.Logger]
)

func init() {
	if os.Getenv("LOGICS_VALUATION_TRACE") == "1" {
		traceEnabled.Store(true)
	}
}

// EnableTrace turns valuation tracing on.
func EnableTrace() { traceEnabled.Store(true) }

// DisableTrace turns valuation tracing off.
func DisableTrace() { traceEnabled.Store(false) }

// SetLogger installs the logger trace records are written to. A nil logger
// restores slog.Default.
func SetLogger(l *slog.Logger) { traceLogger.Store(l) }

func tracing() bool { return traceEnabled.Load() }

func trace(msg string, args ...any) {
	if !traceEnabled.Load() {
		return
	}
	l := traceLogger.Load()
	if l == nil {
		l = slog.Default()
	}
	l.Debug(msg, args...)
}
