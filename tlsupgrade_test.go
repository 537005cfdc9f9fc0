// SPDX-License-Identifier: GPL-3.0-or-later

package nut

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTLSConfig disables verification and uses the placeholder server
// name in insecure mode.
func TestBuildTLSConfigInsecure(t *testing.T) {
	cfg := NewConfig("nutdev.example.org").WithInsecureSSL(true)
	tlsCfg, err := buildTLSConfig(cfg)
	require.NoError(t, err)
	assert.True(t, tlsCfg.InsecureSkipVerify)
	assert.Equal(t, insecurePlaceholderServerName, tlsCfg.ServerName)
}

// buildTLSConfig verifies against the configured hostname in strict
// mode.
func TestBuildTLSConfigStrict(t *testing.T) {
	cfg := NewConfig("nutdev.example.org")
	tlsCfg, err := buildTLSConfig(cfg)
	require.NoError(t, err)
	assert.False(t, tlsCfg.InsecureSkipVerify)
	assert.Equal(t, "nutdev.example.org", tlsCfg.ServerName)
}

// buildTLSConfig rejects a hostname that is not a syntactically valid
// DNS name in strict mode.
func TestBuildTLSConfigStrictInvalidHostname(t *testing.T) {
	cfg := NewConfig("not a valid host!")
	_, err := buildTLSConfig(cfg)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindSslInvalidHostname))
}

// startTLS remaps a FEATURE-NOT-CONFIGURED error into KindSslNotSupported
// before ever attempting the TLS handshake.
func TestStartTLSRemapsFeatureNotConfigured(t *testing.T) {
	c, written := newTestConn("ERR FEATURE-NOT-CONFIGURED\n")
	err := c.startTLS(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindSslNotSupported))
	assert.Equal(t, "STARTTLS\n", written.String())
}

// startTLS rejects any response other than OK STARTTLS.
func TestStartTLSUnexpectedResponse(t *testing.T) {
	c, _ := newTestConn("OK\n")
	err := c.startTLS(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnexpectedResponse))
}
