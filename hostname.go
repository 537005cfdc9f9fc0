// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rupsc/src/parser.rs (UpsdName)
//

package nut

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultHostname and DefaultPort are used for any component the
// host-spec grammar leaves unspecified.
const (
	DefaultHostname = "localhost"
	DefaultPort     = 3493
)

// HostSpec is the parsed form of a `[<upsname>][@<hostname>][:<port>]`
// host specification, as accepted by NUT command-line tools and
// consumed (not produced) by this library.
type HostSpec struct {
	UpsName  string
	HasUps   bool
	Hostname string
	Port     uint16
}

func (h HostSpec) String() string {
	var b strings.Builder
	if h.HasUps {
		fmt.Fprintf(&b, "%s@", h.UpsName)
	}
	fmt.Fprintf(&b, "%s:%d", h.Hostname, h.Port)
	return b.String()
}

// ParseHostSpec parses a host specification string. At least one of
// upsname, hostname, or port must be present in value; an entirely
// empty string is rejected.
func ParseHostSpec(value string) (HostSpec, error) {
	if value == "" {
		return HostSpec{}, fmt.Errorf("nut: empty host specification")
	}

	spec := HostSpec{Hostname: DefaultHostname, Port: DefaultPort}

	switch {
	case strings.Contains(value, ":"):
		prefix, portStr, _ := strings.Cut(value, ":")
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return HostSpec{}, fmt.Errorf("nut: invalid port number %q: %w", portStr, err)
		}
		spec.Port = uint16(port)
		if strings.Contains(prefix, "@") {
			ups, host, _ := strings.Cut(prefix, "@")
			spec.UpsName, spec.HasUps = ups, true
			spec.Hostname = host
		} else {
			spec.Hostname = prefix
		}
	case strings.Contains(value, "@"):
		ups, host, _ := strings.Cut(value, "@")
		spec.UpsName, spec.HasUps = ups, true
		spec.Hostname = host
	default:
		spec.UpsName, spec.HasUps = value, true
	}

	return spec, nil
}
