// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/var.rs
//

package nut

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Well-known variable keys, per the NUT user manual variable list.
const (
	KeyDeviceModel        = "device.model"
	KeyDeviceManufacturer = "device.mfr"
	KeyDeviceSerial       = "device.serial"
	KeyDeviceType         = "device.type"
	KeyDeviceDescription  = "device.description"
	KeyDeviceContact      = "device.contact"
	KeyDeviceLocation     = "device.location"
	KeyDevicePart         = "device.part"
	KeyDeviceMacAddress   = "device.macaddr"
	KeyDeviceUptime       = "device.uptime"
)

// DeviceType is the well-known NUT device type.
type DeviceType struct {
	raw string
}

var (
	DeviceTypeUPS = DeviceType{"ups"}
	DeviceTypePDU = DeviceType{"pdu"}
	DeviceTypeSCD = DeviceType{"scd"}
	DeviceTypePSU = DeviceType{"psu"}
	DeviceTypeATS = DeviceType{"ats"}
)

// ParseDeviceType converts a wire value into a [DeviceType]. Unrecognized
// values are preserved as "other" device types rather than rejected.
func ParseDeviceType(v string) DeviceType {
	switch v {
	case "ups", "pdu", "scd", "psu", "ats":
		return DeviceType{v}
	default:
		return DeviceType{v}
	}
}

// IsOther reports whether this device type falls outside the five
// well-known kinds.
func (d DeviceType) IsOther() bool {
	switch d.raw {
	case "ups", "pdu", "scd", "psu", "ats":
		return false
	default:
		return true
	}
}

func (d DeviceType) String() string {
	if d.IsOther() {
		return fmt.Sprintf("other(%s)", d.raw)
	}
	return d.raw
}

// Value returns the raw wire value of the device type (without the
// "other(...)" wrapping that String applies for unrecognized values).
func (d DeviceType) Value() string {
	return d.raw
}

// Variable is a decoded NUT variable: either one of the well-known
// kinds carrying a typed value, or an opaque (key, value) pair.
type Variable interface {
	// Name returns the NUT wire name of the variable.
	Name() string
	// Value returns the variable's value rendered back to its wire form.
	Value() string
	// String renders a human-readable "name: value" form.
	String() string
}

type stringVariable struct {
	key, val string
}

func (v stringVariable) Name() string   { return v.key }
func (v stringVariable) Value() string  { return v.val }
func (v stringVariable) String() string { return fmt.Sprintf("%s: %s", v.key, v.val) }

// DeviceTypeVariable carries the device.type variable's typed value.
type DeviceTypeVariable struct {
	Type DeviceType
}

func (v DeviceTypeVariable) Name() string   { return KeyDeviceType }
func (v DeviceTypeVariable) Value() string  { return v.Type.Value() }
func (v DeviceTypeVariable) String() string { return fmt.Sprintf("%s: %s", v.Name(), v.Type) }

// DeviceUptimeVariable carries the device.uptime variable's typed value.
type DeviceUptimeVariable struct {
	Uptime time.Duration
}

func (v DeviceUptimeVariable) Name() string { return KeyDeviceUptime }
func (v DeviceUptimeVariable) Value() string {
	return strconv.FormatInt(int64(v.Uptime/time.Second), 10)
}
func (v DeviceUptimeVariable) String() string {
	return fmt.Sprintf("%s: %s", v.Name(), v.Value())
}

// OtherVariable is any variable name outside the well-known set.
type OtherVariable struct {
	Key, Val string
}

func (v OtherVariable) Name() string   { return v.Key }
func (v OtherVariable) Value() string  { return v.Val }
func (v OtherVariable) String() string { return fmt.Sprintf("%s: %s", v.Key, v.Val) }

// ParseVariable builds the typed [Variable] for a (name, value) pair
// decoded from a VAR/RW sentence. The only failure mode is a
// non-numeric device.uptime value, surfaced as a protocol error.
func ParseVariable(name, value string) (Variable, error) {
	switch name {
	case KeyDeviceModel, KeyDeviceManufacturer, KeyDeviceSerial, KeyDeviceDescription,
		KeyDeviceContact, KeyDeviceLocation, KeyDevicePart, KeyDeviceMacAddress:
		return stringVariable{key: name, val: value}, nil
	case KeyDeviceType:
		return DeviceTypeVariable{Type: ParseDeviceType(value)}, nil
	case KeyDeviceUptime:
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, newProtocolError(KindInvalidValue, fmt.Sprintf("invalid device.uptime value %q", value))
		}
		return DeviceUptimeVariable{Uptime: time.Duration(secs) * time.Second}, nil
	default:
		return OtherVariable{Key: name, Val: value}, nil
	}
}

// VariableType is one tag of a [VariableDefinition]'s type set.
type VariableType struct {
	kind      variableTypeKind
	stringLen int
}

type variableTypeKind int

const (
	variableTypeRW variableTypeKind = iota
	variableTypeEnum
	variableTypeString
	variableTypeRange
	variableTypeNumber
)

// ParseVariableType parses one TYPE token, such as "RW", "ENUM",
// "STRING:123", "RANGE", or "NUMBER".
func ParseVariableType(raw string) (VariableType, error) {
	switch raw {
	case "RW":
		return VariableType{kind: variableTypeRW}, nil
	case "ENUM":
		return VariableType{kind: variableTypeEnum}, nil
	case "RANGE":
		return VariableType{kind: variableTypeRange}, nil
	case "NUMBER":
		return VariableType{kind: variableTypeNumber}, nil
	default:
		if n, ok := strings.CutPrefix(raw, "STRING:"); ok {
			size, err := strconv.Atoi(n)
			if err != nil || size <= 0 {
				return VariableType{}, newProtocolError(KindInvalidValue, "invalid STRING definition")
			}
			return VariableType{kind: variableTypeString, stringLen: size}, nil
		}
		return VariableType{}, newProtocolError(KindInvalidValue, fmt.Sprintf("unrecognized variable type: %s", raw))
	}
}

// VariableDefinition is a variable's name plus its set of type tags.
type VariableDefinition struct {
	name  string
	types []VariableType
}

// NewVariableDefinition parses the TYPE response's trailing type tokens
// into a [VariableDefinition].
func NewVariableDefinition(name string, rawTypes []string) (VariableDefinition, error) {
	def := VariableDefinition{name: name}
	seen := make(map[variableTypeKind]bool)
	for _, raw := range rawTypes {
		t, err := ParseVariableType(raw)
		if err != nil {
			return VariableDefinition{}, err
		}
		if seen[t.kind] {
			continue
		}
		seen[t.kind] = true
		def.types = append(def.types, t)
	}
	return def, nil
}

// Name returns the variable's name.
func (d VariableDefinition) Name() string { return d.name }

// IsMutable reports whether the RW tag is present.
func (d VariableDefinition) IsMutable() bool { return d.has(variableTypeRW) }

// IsEnum reports whether the ENUM tag is present.
func (d VariableDefinition) IsEnum() bool { return d.has(variableTypeEnum) }

// IsString reports whether a STRING:n tag is present.
func (d VariableDefinition) IsString() bool { return d.has(variableTypeString) }

// IsRange reports whether the RANGE tag is present.
func (d VariableDefinition) IsRange() bool { return d.has(variableTypeRange) }

// IsNumber reports whether the NUMBER tag is present.
func (d VariableDefinition) IsNumber() bool { return d.has(variableTypeNumber) }

// StringLength returns the STRING:n length and true, or (0, false) if
// no STRING tag is present.
func (d VariableDefinition) StringLength() (int, bool) {
	for _, t := range d.types {
		if t.kind == variableTypeString {
			return t.stringLen, true
		}
	}
	return 0, false
}

func (d VariableDefinition) has(kind variableTypeKind) bool {
	for _, t := range d.types {
		if t.kind == kind {
			return true
		}
	}
	return false
}

// VariableRange is one (min, max) pair reported by LIST RANGE.
type VariableRange struct {
	Min, Max string
}
