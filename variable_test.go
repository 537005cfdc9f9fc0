// SPDX-License-Identifier: GPL-3.0-or-later

package nut

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ParseVariable produces the well-known typed variants for well-known
// keys, and an OtherVariable for everything else.
func TestParseVariable(t *testing.T) {
	v, err := ParseVariable(KeyDeviceModel, "Smart-UPS 1500")
	require.NoError(t, err)
	assert.Equal(t, "Smart-UPS 1500", v.Value())
	assert.Equal(t, KeyDeviceModel, v.Name())

	v, err = ParseVariable(KeyDeviceType, "ups")
	require.NoError(t, err)
	dt, ok := v.(DeviceTypeVariable)
	require.True(t, ok)
	assert.Equal(t, DeviceTypeUPS, dt.Type)
	assert.False(t, dt.Type.IsOther())

	v, err = ParseVariable(KeyDeviceType, "weirdtype")
	require.NoError(t, err)
	dt, ok = v.(DeviceTypeVariable)
	require.True(t, ok)
	assert.True(t, dt.Type.IsOther())
	assert.Equal(t, "other(weirdtype)", dt.Type.String())

	v, err = ParseVariable(KeyDeviceUptime, "3661")
	require.NoError(t, err)
	du, ok := v.(DeviceUptimeVariable)
	require.True(t, ok)
	assert.Equal(t, 3661*time.Second, du.Uptime)
	assert.Equal(t, "3661", du.Value())

	v, err = ParseVariable("battery.charge", "100")
	require.NoError(t, err)
	other, ok := v.(OtherVariable)
	require.True(t, ok)
	assert.Equal(t, "battery.charge", other.Name())
	assert.Equal(t, "100", other.Value())
}

// ParseVariable rejects a non-numeric device.uptime value.
func TestParseVariableInvalidUptime(t *testing.T) {
	_, err := ParseVariable(KeyDeviceUptime, "not-a-number")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidValue))
}

// NewVariableDefinition parses a TYPE response's trailing tags,
// including STRING:n, and deduplicates repeated tags.
func TestNewVariableDefinition(t *testing.T) {
	def, err := NewVariableDefinition("battery.charge", []string{"RW", "NUMBER"})
	require.NoError(t, err)
	assert.True(t, def.IsMutable())
	assert.True(t, def.IsNumber())
	assert.False(t, def.IsEnum())
	assert.Equal(t, "battery.charge", def.Name())

	def, err = NewVariableDefinition("ups.model", []string{"RW", "STRING:64", "RW"})
	require.NoError(t, err)
	assert.True(t, def.IsMutable())
	assert.True(t, def.IsString())
	length, ok := def.StringLength()
	require.True(t, ok)
	assert.Equal(t, 64, length)
}

// ParseVariableType rejects a malformed STRING tag and an unrecognized
// tag.
func TestParseVariableTypeInvalid(t *testing.T) {
	_, err := ParseVariableType("STRING:notanumber")
	require.Error(t, err)

	_, err = ParseVariableType("NOT-A-TYPE")
	require.Error(t, err)
}
