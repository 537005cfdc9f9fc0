//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/blocking/mod.rs (enable_ssl)
//

package nut

import (
	"context"
	"crypto/tls"
	"regexp"
)

// insecurePlaceholderServerName is used as the TLS ServerName when the
// caller opted into [Config.SSLInsecure]. It is never used for
// verification (verification is disabled entirely in that mode); it
// exists only because some TLS stacks require a syntactically valid
// server name to be present in the ClientHello.
const insecurePlaceholderServerName = "insecure.invalid"

// dnsNameRe is a permissive syntactic check for "looks like a DNS name",
// sufficient to reject inputs (IPv6 literals with zone IDs, empty
// labels, control characters) that would make strict TLS verification
// meaningless rather than merely weaker.
var dnsNameRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,62})?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,62})?)*$`)

// buildTLSConfig constructs the [*tls.Config] for the STARTTLS upgrade,
// per the certificate policy of §4.9: strict mode requires the original
// hostname to be a syntactically valid DNS name and verifies against it;
// insecure mode disables verification entirely and uses a placeholder
// name.
func buildTLSConfig(cfg *Config) (*tls.Config, error) {
	if cfg.SSLInsecure {
		return &tls.Config{
			ServerName:         insecurePlaceholderServerName,
			InsecureSkipVerify: true,
		}, nil
	}
	if !dnsNameRe.MatchString(cfg.Host) {
		return nil, newProtocolError(KindSslInvalidHostname, "hostname is not valid for strict TLS verification: "+cfg.Host)
	}
	return &tls.Config{ServerName: cfg.Host}, nil
}

// startTLS performs the mid-session STARTTLS upgrade (§4.9): it writes
// the STARTTLS sentence, waits for "OK STARTTLS" (remapping a
// FEATURE-NOT-CONFIGURED error to [KindSslNotSupported]), performs the
// TLS handshake over the existing connection, and verifies the upgraded
// connection with a no-op NETVER round trip.
func (c *Conn) startTLS(ctx context.Context) error {
	if err := c.writeSentence(reqStartTLS{}); err != nil {
		return err
	}
	resp, err := c.readSentence()
	if err != nil {
		if pe, ok := err.(*ProtocolError); ok && pe.Kind == KindFeatureNotConfig {
			return newProtocolError(KindSslNotSupported, "server did not advertise STARTTLS support")
		}
		return err
	}
	if _, ok := resp.(OKStartTLSResponse); !ok {
		return newProtocolError(KindUnexpectedResponse, "expected OK STARTTLS response")
	}

	tlsConfig, err := buildTLSConfig(c.cfg)
	if err != nil {
		return err
	}

	handshake := NewTLSHandshakeFunc(c.cfg, tlsConfig, c.logger)
	tlsConn, err := handshake.Call(ctx, c.stream.conn)
	if err != nil {
		return newTransportError("tlsHandshake", err)
	}
	c.stream.upgradeTLSClient(tlsConn)

	if _, err := c.NetworkVersion(); err != nil {
		return err
	}
	return nil
}
