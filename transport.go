//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/blocking/mod.rs (ConnectionStream)
//

package nut

import (
	"bufio"
	"net"
)

// stream wraps the connection a [*Conn] speaks NUT sentences over. It
// starts out as a plain buffered TCP connection and may be upgraded, at
// most once, to a TLS connection via [stream.upgradeTLSClient].
//
// Upgrading to TLS discards any bytes already buffered but not yet
// consumed from the plain connection: the protocol guarantees that a
// client never has unread bytes pending when it issues STARTTLS, since
// the upgrade only follows a just-consumed "OK STARTTLS" response.
type stream struct {
	conn net.Conn
	br   *bufio.Reader
}

func newStream(conn net.Conn) *stream {
	return &stream{conn: conn, br: bufio.NewReader(conn)}
}

// isTLS reports whether the stream has been upgraded to TLS.
func (s *stream) isTLS() bool {
	_, ok := s.conn.(TLSConn)
	return ok
}

// writeLine writes a single already-newline-terminated line and flushes
// it immediately; NUT has no separate flush primitive, every write is a
// full line.
func (s *stream) writeLine(line string) error {
	_, err := s.conn.Write([]byte(line))
	return err
}

// readLine reads one '\n'-terminated line and returns it with the
// terminator still attached; callers strip it. On any read error,
// including EOF before a newline, it returns "" and the error;
// readSentence reports an EOF as [io.ErrUnexpectedEOF] wrapped in a
// [*TransportError].
func (s *stream) readLine() (string, error) {
	line, err := s.br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return line, nil
}

// upgradeTLSClient replaces the plain connection with tlsConn, dropping
// the (guaranteed-empty) buffered reader and installing a fresh one over
// the TLS connection.
func (s *stream) upgradeTLSClient(tlsConn TLSConn) {
	s.conn = tlsConn
	s.br = bufio.NewReader(tlsConn)
}

func (s *stream) close() error {
	return s.conn.Close()
}
