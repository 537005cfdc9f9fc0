//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/blocking/mod.rs
//

package nut

import (
	"context"
	"errors"
	"io"
	"strings"
)

// maxListItems caps the number of sentences runList reads after BEGIN
// LIST, the END LIST terminator included, before the driver gives up and
// reports [KindIterationCapReached]; a list therefore succeeds with at
// most maxListItems-1 items. This guards against a misbehaving server
// that never sends END LIST.
const maxListItems = 1000

// connState is the session state machine of §4.8:
//
//	Connected -> (optional STARTTLS) -> Secured ->
//	(optional USERNAME) -> NamedUser -> (optional PASSWORD) -> Authenticated
//
// A transport error moves the connection to Failed from any state; only
// Close is permitted afterward. Terminated is reached after a successful
// LOGOUT.
type connState int

const (
	stateConnected connState = iota
	stateSecured
	stateNamedUser
	stateAuthenticated
	stateFailed
	stateTerminated
)

// Conn is a synchronous, single-session NUT client connection. It owns
// its underlying transport for its entire lifetime: construct one with
// [NewConn] and release it with [Conn.Close].
//
// A *Conn is not safe for concurrent use: NUT is a strictly
// request/response protocol and operations must not interleave.
type Conn struct {
	stream   *stream
	cfg      *Config
	logger   SLogger
	state    connState
	loginUps string
}

// NewConn dials cfg.Host:cfg.Port, optionally performs a STARTTLS
// upgrade (if cfg.SSL), and optionally authenticates (if cfg.Auth is
// set), per §4.8. On any failure the partially constructed connection is
// closed and the error is returned.
func NewConn(ctx context.Context, cfg *Config, logger SLogger) (*Conn, error) {
	if logger == nil {
		logger = DefaultSLogger()
	}
	logger = withSpanID(logger)

	dial := Compose2(
		Compose2(NewConnectFunc(cfg, logger), NewObserveConnFunc(cfg, logger)),
		NewCancelWatchFunc(),
	)

	connectCtx := ctx
	if cfg.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			connectCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}
	}
	raw, err := dial.Call(connectCtx, cfg.Address())
	if err != nil {
		return nil, newTransportError("connect", err)
	}

	c := &Conn{
		stream: newStream(raw),
		cfg:    cfg,
		logger: logger,
		state:  stateConnected,
	}

	if cfg.SSL {
		if err := c.startTLS(ctx); err != nil {
			c.stream.close()
			return nil, err
		}
		c.state = stateSecured
	}

	if cfg.Auth != nil {
		if err := c.authenticate(cfg.Auth); err != nil {
			c.stream.close()
			return nil, err
		}
	}

	return c, nil
}

func (c *Conn) authenticate(auth *Auth) error {
	if err := c.call(reqUsername{Username: auth.Username}); err != nil {
		return err
	}
	c.state = stateNamedUser

	if auth.Password != nil {
		if err := c.call(reqPassword{Password: *auth.Password}); err != nil {
			return err
		}
	}
	c.state = stateAuthenticated
	return nil
}

// Close logs out (best effort) and closes the underlying transport.
// Close is always safe to call, even after a transport error.
func (c *Conn) Close() error {
	if c.state != stateFailed && c.state != stateTerminated {
		_ = c.call(reqLogout{})
		c.state = stateTerminated
	}
	return c.stream.close()
}

// --- sentence I/O, per §4.5 ---

func (c *Conn) writeSentence(req Request) error {
	line := Join(req.Encode())
	if c.cfg.Debug {
		c.logger.Debug("sentenceSent", "words", req.Encode())
	}
	if err := c.stream.writeLine(line); err != nil {
		c.state = stateFailed
		return newTransportError("write", err)
	}
	return nil
}

func (c *Conn) readSentence() (Response, error) {
	line, err := c.stream.readLine()
	if err != nil {
		c.state = stateFailed
		if errors.Is(err, io.EOF) && line == "" {
			return nil, newTransportError("read", io.ErrUnexpectedEOF)
		}
		return nil, newTransportError("read", err)
	}
	tokens, err := Split(line)
	if err != nil {
		return nil, newProtocolError(KindNotProcessable, err.Error())
	}
	resp, err := DecodeResponse(tokens)
	if err != nil {
		return nil, err
	}
	if c.cfg.Debug {
		c.logger.Debug("sentenceReceived", "words", tokens)
	}
	if e, ok := resp.(ErrResponse); ok {
		return nil, newErrFromSentence(e)
	}
	return resp, nil
}

// readRawLine reads a single line reply that is not a tokenized
// sentence (HELP, VERSION, NETVER all reply with one free-form text line
// rather than a catalog-matched sentence), stripping the trailing
// newline.
func (c *Conn) readRawLine() (string, error) {
	line, err := c.stream.readLine()
	if err != nil {
		c.state = stateFailed
		return "", newTransportError("read", err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// call writes req and discards a bare OK response, returning any other
// response (including a translated ERR) as an error.
func (c *Conn) call(req Request) error {
	if err := c.writeSentence(req); err != nil {
		return err
	}
	resp, err := c.readSentence()
	if err != nil {
		return err
	}
	if _, ok := resp.(OKResponse); ok {
		return nil
	}
	return newProtocolError(KindUnexpectedResponse, "expected OK response")
}

// decodeListItem type-asserts resp to T, translating a mismatch into an
// unexpected-response protocol error instead of a panic.
func decodeListItem[T Response](resp Response) (T, error) {
	item, ok := resp.(T)
	if !ok {
		var zero T
		return zero, newProtocolError(KindUnexpectedResponse, "unexpected item in list response")
	}
	return item, nil
}

// runList issues req, verifies the BEGIN LIST/END LIST framing echoes the
// given query words (§8 property 5), and collects the items of type T in
// between, reading at most maxListItems sentences after BEGIN LIST.
func runList[T Response](c *Conn, req Request, query []string) ([]T, error) {
	if err := c.writeSentence(req); err != nil {
		return nil, err
	}

	begin, err := c.readSentence()
	if err != nil {
		return nil, err
	}
	beginList, ok := begin.(BeginListResponse)
	if !ok {
		return nil, newProtocolError(KindUnexpectedResponse, "expected BEGIN LIST response")
	}
	if !sameWords(beginList.Query, query) {
		return nil, newProtocolError(KindListFramingMismatch, "BEGIN LIST query does not match request")
	}

	var items []T
	for {
		if len(items) >= maxListItems {
			return nil, newProtocolError(KindIterationCapReached, "LIST exceeded the maximum number of items")
		}
		resp, err := c.readSentence()
		if err != nil {
			return nil, err
		}
		if endList, ok := resp.(EndListResponse); ok {
			if !sameWords(endList.Query, query) {
				return nil, newProtocolError(KindListFramingMismatch, "END LIST query does not match request")
			}
			return items, nil
		}
		item, err := decodeListItem[T](resp)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
