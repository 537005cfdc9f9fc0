// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/config.rs
//

package nut

import (
	"fmt"
	"net"
	"time"
)

// Auth carries optional authentication credentials for a NUT session.
type Auth struct {
	// Username logs the connection in as this user (§4.8).
	Username string
	// Password, if set, is sent after Username.
	Password *string
}

// GoString redacts the password, mirroring the original Debug impl of
// the Rust Auth type.
func (a Auth) GoString() string {
	pw := "<nil>"
	if a.Password != nil {
		pw = "(redacted)"
	}
	return fmt.Sprintf("nut.Auth{Username:%q, Password:%s}", a.Username, pw)
}

// Config holds the configuration for opening a [*Conn] to a NUT server,
// plus the ambient (dialer, logging, error classification) wiring shared
// with the rest of the package.
//
// Pass this to constructor functions to pre-wire dependencies. All fields
// have sensible defaults set by [NewConfig]; use the With* methods to
// override them, chaining calls to build the final configuration.
type Config struct {
	// Host is the server address, e.g. "localhost" or "ups.example.org".
	Host string

	// Port is the TCP port to connect to. Defaults to 3493.
	Port int

	// Auth carries optional username/password credentials.
	Auth *Auth

	// Timeout bounds the TCP connect step of [NewConn], and only when the
	// context passed to NewConn has no deadline of its own. The STARTTLS
	// upgrade, login, and later request/response round trips are not
	// bounded by this value.
	Timeout time.Duration

	// SSL enables a STARTTLS upgrade immediately after connecting.
	SSL bool

	// SSLInsecure disables hostname and certificate chain verification
	// when SSL is enabled. In that mode the TLS server name is a fixed
	// placeholder that is never verified.
	SSLInsecure bool

	// Debug additionally logs each sentence exchanged on the wire at
	// [slog.LevelDebug], via Logger.
	Debug bool

	// Dialer is used to establish the underlying connection.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] for connecting to host with sensible
// defaults: port 3493, no authentication, a 5 second timeout, and SSL
// disabled.
func NewConfig(host string) *Config {
	return &Config{
		Host:          host,
		Port:          DefaultPort,
		Timeout:       5 * time.Second,
		Dialer:        &net.Dialer{},
		ErrClassifier: DefaultErrClassifier,
		TimeNow:       time.Now,
	}
}

// WithAuth sets the username and, optionally, the password to
// authenticate with.
func (c *Config) WithAuth(username string, password *string) *Config {
	c.Auth = &Auth{Username: username, Password: password}
	return c
}

// WithPort overrides the default port (3493).
func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

// WithTimeout overrides the default connection timeout (5s).
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithSSL enables a STARTTLS upgrade right after connecting. This also
// enables strict hostname and certificate verification, unless
// WithInsecureSSL is also set.
func (c *Config) WithSSL(ssl bool) *Config {
	c.SSL = ssl
	return c
}

// WithInsecureSSL disables hostname and certificate verification. It has
// no effect unless WithSSL(true) is also set.
func (c *Config) WithInsecureSSL(insecure bool) *Config {
	c.SSLInsecure = insecure
	return c
}

// WithDebug enables wire-level sentence logging at Debug level.
func (c *Config) WithDebug(debug bool) *Config {
	c.Debug = debug
	return c
}

// WithDialer overrides the [Dialer] used to establish connections.
func (c *Config) WithDialer(dialer Dialer) *Config {
	c.Dialer = dialer
	return c
}

// Address renders the host:port pair to dial.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
