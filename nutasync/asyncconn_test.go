// SPDX-License-Identifier: GPL-3.0-or-later

package nutasync

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/aramperes/nut-go"
	"github.com/bassosimone/netstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingConn is a [*netstub.FuncConn] whose Read blocks until release
// is closed, used to simulate a server that never answers so a
// cancellation can be observed mid-flight.
func blockingConn(release <-chan struct{}) *netstub.FuncConn {
	return &netstub.FuncConn{
		ReadFunc: func(p []byte) (int, error) {
			<-release
			return 0, net.ErrClosed
		},
		WriteFunc: func(p []byte) (int, error) { return len(p), nil },
		CloseFunc: func() error { return nil },
		LocalAddrFunc: func() net.Addr {
			return &net.TCPAddr{}
		},
		RemoteAddrFunc: func() net.Addr {
			return &net.TCPAddr{}
		},
	}
}

// scriptedDialer returns a [nut.Dialer] that hands back conn on dial.
func scriptedDialer(conn net.Conn) nut.Dialer {
	return &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			return conn, nil
		},
	}
}

// newOpenConn opens a [*Conn] against a scripted server that has
// already been authenticated (no Auth set, so Open skips login).
func newOpenConn(t *testing.T, responses string) (*Conn, *bytes.Buffer) {
	t.Helper()
	var written bytes.Buffer
	r := strings.NewReader(responses)
	raw := &netstub.FuncConn{
		ReadFunc:  func(p []byte) (int, error) { return r.Read(p) },
		WriteFunc: func(p []byte) (int, error) { written.Write(p); return len(p), nil },
		CloseFunc: func() error { return nil },
		LocalAddrFunc: func() net.Addr {
			return &net.TCPAddr{}
		},
		RemoteAddrFunc: func() net.Addr {
			return &net.TCPAddr{}
		},
	}
	cfg := nut.NewConfig("nutdev.example.org")
	cfg.Dialer = scriptedDialer(raw)
	c, err := Open(context.Background(), cfg, nut.DefaultSLogger())
	require.NoError(t, err)
	return c, &written
}

// Open succeeds against a scripted server and returns a usable *Conn.
func TestOpen(t *testing.T) {
	c, _ := newOpenConn(t, "")
	require.NotNil(t, c)
}

// A cancelled context aborts Open before the dial completes.
func TestOpenCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	cfg := nut.NewConfig("nutdev.example.org")
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			<-release
			return blockingConn(release), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, cfg, nut.DefaultSLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// ListUps completes normally and returns the decoded items when the
// context is not cancelled.
func TestConnListUps(t *testing.T) {
	c, written := newOpenConn(t,
		"BEGIN LIST UPS\n"+
			"UPS nutdev \"Test UPS\"\n"+
			"END LIST UPS\n",
	)
	items, err := c.ListUps(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "nutdev", items[0].Name)
	assert.Contains(t, written.String(), "LIST UPS\n")
}

// NumLogins completes normally.
func TestConnNumLogins(t *testing.T) {
	c, _ := newOpenConn(t, "NUMLOGINS nutdev 3\n")
	n, err := c.NumLogins(context.Background(), "nutdev")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// Cancelling the context while an operation is in flight aborts the
// operation with ctx.Err() and leaves the connection closed rather than
// reusable.
func TestConnOperationCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	closed := make(chan struct{}, 1)
	raw := blockingConn(release)
	raw.CloseFunc = func() error {
		select {
		case closed <- struct{}{}:
		default:
		}
		return nil
	}

	cfg := nut.NewConfig("nutdev.example.org")
	cfg.Dialer = scriptedDialer(raw)
	c, err := Open(context.Background(), cfg, nut.DefaultSLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.NumLogins(ctx, "nutdev")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Eventually(t, func() bool {
		select {
		case <-closed:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

// Close sends LOGOUT best-effort and never accepts a context.
func TestConnClose(t *testing.T) {
	c, written := newOpenConn(t, "OK Goodbye\n")
	err := c.Close()
	require.NoError(t, err)
	assert.Equal(t, "LOGOUT\n", written.String())
}
