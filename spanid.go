package nut

import (
	"log/slog"

	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 representing a span.
//
// A span is a sequence of operations that can fail in a single, specific
// way. For example, dialing and authenticating a [*Conn], or a single
// STARTTLS upgrade.
//
// We recommend using a span ID for uniquely identifying spans.
//
// The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}

// spanLogger wraps an [SLogger] with a fixed "spanID" field prepended to
// every call's args, so every log line emitted over one [*Conn]'s
// lifetime can be correlated without each call site threading the id
// through by hand.
type spanLogger struct {
	next   SLogger
	spanID string
}

// withSpanID wraps logger with a fresh [NewSpanID], unless logger is
// already a [*spanLogger] (nesting would duplicate the field).
func withSpanID(logger SLogger) SLogger {
	if sl, ok := logger.(*spanLogger); ok {
		return sl
	}
	return &spanLogger{next: logger, spanID: NewSpanID()}
}

func (l *spanLogger) Debug(msg string, args ...any) {
	l.next.Debug(msg, append([]any{slog.String("spanID", l.spanID)}, args...)...)
}

func (l *spanLogger) Info(msg string, args ...any) {
	l.next.Info(msg, append([]any{slog.String("spanID", l.spanID)}, args...)...)
}
