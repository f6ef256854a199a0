// Package system validates installation-level settings.
package system

import (
	"net/netip"
	"strconv"
	"strings"
)

// Engine is the storage engine a connection targets
type Engine string

const (
	EngineSQL   Engine = "sql"
	EngineMongo Engine = "mongo"
)

// ConnectionInput is the connection settings form
type ConnectionInput struct {
	IP     string `json:"ip"`
	Port   string `json:"port"`
	Path   string `json:"path"`
	Engine Engine `json:"engine"`
}

// ValidateConnection returns every problem found in in, or nil when the
// settings are acceptable.
func ValidateConnection(in ConnectionInput) []string {
	var errs []string
	if !isIPv4(strings.TrimSpace(in.IP)) {
		errs = append(errs, "IP address must be a valid IPv4 address")
	}
	if port, err := strconv.Atoi(strings.TrimSpace(in.Port)); err != nil || port < 1 || port > 65535 {
		errs = append(errs, "Port must be a number between 1 and 65535")
	}
	if path := strings.TrimSpace(in.Path); path != "" && len(path) < 3 {
		errs = append(errs, "Path must be at least 3 characters")
	}
	if in.Engine != EngineSQL && in.Engine != EngineMongo {
		errs = append(errs, "Database engine must be sql or mongo")
	}
	return errs
}

// isIPv4 accepts a dotted-quad IPv4 address. Octets with leading zeros and
// IPv4-mapped IPv6 forms are rejected.
func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
