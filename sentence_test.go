// SPDX-License-Identifier: GPL-3.0-or-later

package nut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each request below encodes to the exact wire words the server would
// receive, and those words survive a Join/Split round trip.
func TestRequestEncodeJoinRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want []string
	}{
		{"logout", reqLogout{}, []string{"LOGOUT"}},
		{"login", reqLogin{Ups: "nutdev"}, []string{"LOGIN", "nutdev"}},
		{"getvar", reqGetVar{Ups: "nutdev", Name: "battery.charge"}, []string{"GET", "VAR", "nutdev", "battery.charge"}},
		{"instcmd-noarg", reqInstCmd{Ups: "nutdev", Cmd: "test.battery.start"}, []string{"INSTCMD", "nutdev", "test.battery.start"}},
		{"instcmd-arg", reqInstCmd{Ups: "nutdev", Cmd: "beeper.mute", Arg: "quiet", HasArg: true}, []string{"INSTCMD", "nutdev", "beeper.mute", "quiet"}},
		{"setvar", reqSetVar{Ups: "nutdev", Name: "ups.delay.shutdown", Value: "30"}, []string{"SET", "VAR", "nutdev", "ups.delay.shutdown", "30"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			words := tc.req.Encode()
			assert.Equal(t, tc.want, words)

			line := Join(words)
			got, err := Split(line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// DecodeResponse decodes a sample of catalog rows, including the variadic
// tails of ERR, BEGIN LIST, and END LIST with 0, 1, 2, and 5 trailing words.
func TestDecodeResponseCatalog(t *testing.T) {
	cases := []struct {
		line string
		want Response
	}{
		{"OK\n", OKResponse{}},
		{"OK FSD-SET\n", OKFsdSetResponse{}},
		{"OK STARTTLS\n", OKStartTLSResponse{}},
		{"BEGIN LIST UPS\n", BeginListResponse{Query: []string{"UPS"}}},
		{"END LIST VAR nutdev\n", EndListResponse{Query: []string{"VAR", "nutdev"}}},
		{"BEGIN LIST RANGE nutdev input.voltage.low a b\n", BeginListResponse{Query: []string{"RANGE", "nutdev", "input.voltage.low", "a", "b"}}},
		{"ERR UNKNOWN-UPS\n", ErrResponse{Code: "UNKNOWN-UPS"}},
		{"NUMLOGINS nutdev 3\n", NumLoginsResponse{Ups: "nutdev", N: "3"}},
		{"VAR nutdev battery.charge 100\n", VarResponse{Ups: "nutdev", Name: "battery.charge", Value: "100"}},
		{"TYPE nutdev battery.charge RW NUMBER\n", TypeResponse{Ups: "nutdev", Name: "battery.charge", Types: []string{"RW", "NUMBER"}}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			tokens, err := Split(tc.line)
			require.NoError(t, err)
			resp, err := DecodeResponse(tokens)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp)
		})
	}
}

// DecodeResponse reports KindUnknownResponseType for a line matching no
// catalog row.
func TestDecodeResponseUnknown(t *testing.T) {
	tokens, err := Split("WAT\n")
	require.NoError(t, err)
	_, err = DecodeResponse(tokens)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnknownResponseType))
}

// A non-variadic pattern does not match when extra tokens remain.
func TestDecodeResponseTrailingTokensRejected(t *testing.T) {
	tokens, err := Split("OK unexpected\n")
	require.NoError(t, err)
	_, err = DecodeResponse(tokens)
	require.Error(t, err)
}
