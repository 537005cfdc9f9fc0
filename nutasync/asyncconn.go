//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/bassosimone-nop/cancelwatch.go
// Adapted from: _examples/original_source/rups/src/tokio/mod.rs (async Connection)
//

// Package nutasync is the cooperatively-scheduled twin of the root nut
// package's synchronous [nut.Conn]. It exposes the exact same set of
// operations, under the exact same contracts on inputs, outputs, and
// errors, differing only in that every operation accepts a per-call
// [context.Context] and is a suspension point: the caller's scheduler
// may run other goroutines while the operation awaits the network, and
// cancelling the context aborts the operation.
//
// Every operation runs the underlying synchronous call on a dedicated
// goroutine and races it against ctx.Done(). If the context is cancelled
// or its deadline expires before the call completes, the operation
// returns ctx.Err() immediately and the connection is closed: it is left
// in an indeterminate state and the in-flight goroutine's eventual
// result (if any) is discarded.
//
// A *Conn is not safe for concurrent use, exactly like [nut.Conn]: NUT is
// a strictly serial request/response protocol and the library does not
// detect concurrent misuse.
package nutasync

import (
	"context"

	"github.com/aramperes/nut-go"
)

// Conn is the cooperatively-scheduled twin of [nut.Conn].
type Conn struct {
	inner *nut.Conn
}

// Open dials cfg.Host:cfg.Port, optionally upgrades to TLS, and
// optionally authenticates, exactly as [nut.NewConn] does. Like every
// other operation on [*Conn], Open itself is a suspension point:
// cancelling ctx during the dial/handshake aborts it and no [*Conn] is
// returned.
func Open(ctx context.Context, cfg *nut.Config, logger nut.SLogger) (*Conn, error) {
	type result struct {
		conn *nut.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := nut.NewConn(ctx, cfg, logger)
		ch <- result{c, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return &Conn{inner: r.conn}, nil
	case <-ctx.Done():
		// The dial/handshake may still succeed after we give up waiting
		// on it. Since no *Conn was ever handed to the caller, close it
		// ourselves as soon as it arrives rather than leaking the
		// transport.
		go func() {
			if r := <-ch; r.err == nil && r.conn != nil {
				_ = r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// run races fn against ctx, returning fn's result if it completes
// first, or ctx.Err() if ctx is done first. On cancellation the
// connection is closed: per §5 the operation is left in an
// indeterminate state and must not be reused.
func run[T any](ctx context.Context, c *Conn, fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case r := <-ch:
		return r.val, r.err
	case <-ctx.Done():
		_ = c.inner.Close()
		var zero T
		return zero, ctx.Err()
	}
}

// runVoid is [run] specialized for operations with no success value.
func runVoid(ctx context.Context, c *Conn, fn func() error) error {
	_, err := run(ctx, c, func() (nut.Unit, error) {
		return nut.Unit{}, fn()
	})
	return err
}

// Close logs out (best effort) and closes the underlying transport.
// Close does not accept a context: it is always best-effort and must
// never be abandoned mid-teardown, since an abandoned Close would leak
// the transport.
func (c *Conn) Close() error {
	return c.inner.Close()
}

// NumLogins returns the number of clients currently logged in to ups.
func (c *Conn) NumLogins(ctx context.Context, ups string) (int, error) {
	return run(ctx, c, func() (int, error) { return c.inner.NumLogins(ups) })
}

// UpsDescription returns ups's human-readable description.
func (c *Conn) UpsDescription(ctx context.Context, ups string) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.UpsDescription(ups) })
}

// Variable returns the typed value of variable name on ups.
func (c *Conn) Variable(ctx context.Context, ups, name string) (nut.Variable, error) {
	return run(ctx, c, func() (nut.Variable, error) { return c.inner.Variable(ups, name) })
}

// VariableDefinition returns the type tags of variable name on ups.
func (c *Conn) VariableDefinition(ctx context.Context, ups, name string) (nut.VariableDefinition, error) {
	return run(ctx, c, func() (nut.VariableDefinition, error) { return c.inner.VariableDefinition(ups, name) })
}

// VariableDescription returns the human-readable description of
// variable name on ups.
func (c *Conn) VariableDescription(ctx context.Context, ups, name string) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.VariableDescription(ups, name) })
}

// CommandDescription returns the human-readable description of instant
// command cmd on ups.
func (c *Conn) CommandDescription(ctx context.Context, ups, cmd string) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.CommandDescription(ups, cmd) })
}

// ListUps lists every UPS device known to the server.
func (c *Conn) ListUps(ctx context.Context) ([]nut.UpsItemResponse, error) {
	return run(ctx, c, func() ([]nut.UpsItemResponse, error) { return c.inner.ListUps() })
}

// ListVariables lists every variable currently set on ups.
func (c *Conn) ListVariables(ctx context.Context, ups string) ([]nut.Variable, error) {
	return run(ctx, c, func() ([]nut.Variable, error) { return c.inner.ListVariables(ups) })
}

// ListMutableVariables lists the variables on ups that are mutable
// (settable via SET VAR).
func (c *Conn) ListMutableVariables(ctx context.Context, ups string) ([]nut.RwResponse, error) {
	return run(ctx, c, func() ([]nut.RwResponse, error) { return c.inner.ListMutableVariables(ups) })
}

// ListCommands lists the instant commands supported by ups.
func (c *Conn) ListCommands(ctx context.Context, ups string) ([]nut.CmdItemResponse, error) {
	return run(ctx, c, func() ([]nut.CmdItemResponse, error) { return c.inner.ListCommands(ups) })
}

// ListEnumValues lists the admissible values of an ENUM-typed variable.
func (c *Conn) ListEnumValues(ctx context.Context, ups, name string) ([]nut.EnumItemResponse, error) {
	return run(ctx, c, func() ([]nut.EnumItemResponse, error) { return c.inner.ListEnumValues(ups, name) })
}

// ListRanges lists the admissible (min, max) ranges of a RANGE-typed
// variable.
func (c *Conn) ListRanges(ctx context.Context, ups, name string) ([]nut.VariableRange, error) {
	return run(ctx, c, func() ([]nut.VariableRange, error) { return c.inner.ListRanges(ups, name) })
}

// ListClients lists the IP addresses of clients currently connected to
// ups.
func (c *Conn) ListClients(ctx context.Context, ups string) ([]nut.ClientItemResponse, error) {
	return run(ctx, c, func() ([]nut.ClientItemResponse, error) { return c.inner.ListClients(ups) })
}

// SetVariable sets variable name on ups to value.
func (c *Conn) SetVariable(ctx context.Context, ups, name, value string) error {
	return runVoid(ctx, c, func() error { return c.inner.SetVariable(ups, name, value) })
}

// RunCommand executes instant command cmd on ups with no argument.
func (c *Conn) RunCommand(ctx context.Context, ups, cmd string) error {
	return runVoid(ctx, c, func() error { return c.inner.RunCommand(ups, cmd) })
}

// RunCommandWithArg executes instant command cmd on ups, passing arg.
func (c *Conn) RunCommandWithArg(ctx context.Context, ups, cmd, arg string) error {
	return runVoid(ctx, c, func() error { return c.inner.RunCommandWithArg(ups, cmd, arg) })
}

// Login registers this connection as monitoring ups. It may be issued at
// most once per connection.
func (c *Conn) Login(ctx context.Context, ups string) error {
	return runVoid(ctx, c, func() error { return c.inner.Login(ups) })
}

// Master requests exclusive (master) access to ups.
func (c *Conn) Master(ctx context.Context, ups string) error {
	return runVoid(ctx, c, func() error { return c.inner.Master(ups) })
}

// ForceShutdown (FSD) tells the server that this client is about to shut
// the system down.
func (c *Conn) ForceShutdown(ctx context.Context, ups string) error {
	return runVoid(ctx, c, func() error { return c.inner.ForceShutdown(ups) })
}

// Help requests the server's list of supported top-level commands.
func (c *Conn) Help(ctx context.Context) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.Help() })
}

// Version requests the server daemon's version string.
func (c *Conn) Version(ctx context.Context) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.Version() })
}

// NetworkVersion requests the NUT network protocol version the server
// implements.
func (c *Conn) NetworkVersion(ctx context.Context) (string, error) {
	return run(ctx, c, func() (string, error) { return c.inner.NetworkVersion() })
}
