// SPDX-License-Identifier: GPL-3.0-or-later

package nut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// classifyErrCode maps every known wire code to its typed kind and
// falls back to KindGeneric for anything outside the closed set.
func TestClassifyErrCode(t *testing.T) {
	assert.Equal(t, KindAccessDenied, classifyErrCode("ACCESS-DENIED"))
	assert.Equal(t, KindUnknownUps, classifyErrCode("UNKNOWN-UPS"))
	assert.Equal(t, KindGeneric, classifyErrCode("SOMETHING-NEW"))
}

// newErrFromSentence builds a ProtocolError carrying the sentence's code
// and extras, classified via the lookup table.
func TestNewErrFromSentence(t *testing.T) {
	err := newErrFromSentence(ErrResponse{Code: "ACCESS-DENIED"})
	assert.Equal(t, KindAccessDenied, err.Kind)
	assert.Equal(t, "ACCESS-DENIED", err.Code)

	err = newErrFromSentence(ErrResponse{Code: "SOMETHING-NEW", Extras: []string{"extra"}})
	assert.Equal(t, KindGeneric, err.Kind)
	assert.Contains(t, err.Error(), "SOMETHING-NEW")
}

// IsKind reports true only for a matching ProtocolError kind, and false
// for any other error (including nil kind mismatches and non-protocol
// errors).
func TestIsKind(t *testing.T) {
	err := newProtocolError(KindUnexpectedResponse, "boom")
	assert.True(t, IsKind(err, KindUnexpectedResponse))
	assert.False(t, IsKind(err, KindNotProcessable))
	assert.False(t, IsKind(errors.New("plain"), KindUnexpectedResponse))
}

// TransportError unwraps to the underlying I/O error.
func TestTransportErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	te := newTransportError("read", inner)
	assert.ErrorIs(t, te, inner)
	assert.Contains(t, te.Error(), "read")
}
