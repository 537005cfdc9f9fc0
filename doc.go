// SPDX-License-Identifier: GPL-3.0-or-later

// Package nut implements a client for the Network UPS Tools (NUT) network
// protocol v1.2: the line-oriented, shell-word-tokenized request/response
// protocol spoken by upsd over TCP port 3493.
//
// # Core Abstraction
//
// Connection-level primitives are built around a single interface:
//
//	type Func[A, B any] interface {
//		Call(ctx context.Context, input A) (B, error)
//	}
//
// Each Func represents an atomic operation with exactly one success mode
// and one failure mode. This design enables type-safe composition via
// [Compose2], [Compose3], etc., where the compiler verifies that outputs
// match inputs across pipeline stages. [NewConn] composes [*ConnectFunc],
// [*ObserveConnFunc], and [*CancelWatchFunc] this way for the dial step,
// then performs the STARTTLS upgrade and login sequence.
//
// # Available Primitives
//
// Connection establishment:
//   - [ConnectFunc]: dials a "host:port" TCP address, preserving the
//     original hostname for later TLS verification
//   - [TLSHandshakeFunc]: performs a TLS handshake over an existing
//     connection, used for the mid-session STARTTLS upgrade
//   - [ObserveConnFunc]: observes connections for logging I/O operations
//   - [CancelWatchFunc]: closes a connection on context cancellation (for
//     responsive ^C handling)
//
// Protocol layer:
//   - [Split] and [Join]: the shell-word tokenizer and its inverse
//   - [DecodeResponse]: the generic sentence decoder, driven by a data
//     table rather than one function per sentence kind
//   - [Conn]: the synchronous connection driver implementing the full
//     session state machine and every GET/LIST/action operation
//
// The nutasync subpackage exposes the same operations through a
// context-aware, cancellable API for callers that need cooperative
// scheduling.
//
// Composition utilities:
//   - [Compose2] through [Compose8]: chain Funcs into pipelines
//   - [FuncAdapter]: wrap a function as a Func for ad-hoc custom behavior
//   - [Apply]: bind a fixed input to a Func
//   - [ConstFunc]: lift a pure value into a Func
//
// # Connection Lifecycle
//
// [NewConn] dials, optionally performs a STARTTLS upgrade, and optionally
// logs in, transferring ownership of the underlying connection to the
// returned [*Conn] on success. On error at any stage the partially
// constructed connection is closed.
//
// [*Conn] owns its connection for its entire lifetime. Callers must call
// [Conn.Close] when done (which sends LOGOUT on a best-effort basis and
// always closes the transport).
//
// # Observability
//
// All primitives support structured logging via [SLogger] (compatible
// with [log/slog]). By default, logging is disabled. Set the Logger field
// to a custom [*slog.Logger] to enable it. Error classification for
// connection-level failures is configurable via [ErrClassifier]; by
// default, [DefaultErrClassifier] classifies common dial/I/O failures
// (timeouts, resets, refusals).
//
// Primitives emit two kinds of structured log events:
//
//   - Span events (*Start/*Done pairs): record operation lifecycle
//     including timing and success/failure.
//
//   - Wire observations (sentenceSent/sentenceReceived): capture the
//     decoded sentence exchanged with the server, for protocol debugging.
//     These are emitted at [slog.LevelDebug] when [Config.Debug] is set.
//
// [NewConn] generates a unique, time-ordered span id (UUIDv7, see
// [NewSpanID]) for every connection and attaches it to the logger
// automatically; every log entry emitted over that connection's
// lifetime carries the same spanID field, enabling correlation across
// the session without callers having to thread it through by hand.
//
// # Timeout and Context Philosophy
//
// This package is context-transparent: operations never modify the
// context they receive. The caller controls timeouts externally via
// [context.WithTimeout], [context.WithDeadline], or
// [signal.NotifyContext]. When the context is done (timeout, cancel, or
// signal), operations fail and the connection moves to its Failed state.
//
// Connection lifecycle requires [CancelWatchFunc] to bind the context
// lifecycle to the connection: when the context is done, the connection
// is closed immediately, causing any in-progress I/O to fail. This
// enables responsive ^C handling via [signal.NotifyContext] and ensures
// that blocking I/O respects the context deadline.
//
// # Design Boundaries
//
// This package intentionally provides only the protocol client and its
// primitives. The following are out of scope and should be implemented by
// higher-level packages:
//
//   - Connection pooling and retry/backoff logic
//   - A upsd server implementation
//   - Unix domain socket transport
//
// These concerns introduce multiple success/failure modes, which would
// compromise the compositional simplicity of the primitives.
package nut
