// Package hostkey derives the normalized lookup key for a request host.
//
// Every layer of the service (cache, durable store, logs) is keyed by the
// same normalized form, so two requests with the same effective host always
// resolve through the same entry.
package hostkey

import (
	"net"
	"strings"
)

// FromAuthority normalizes a request authority (the Host header, possibly
// including a port) into a lookup key: lowercase hostname with any port
// suffix stripped.
func FromAuthority(authority string) string {
	host := authority
	if h, _, err := net.SplitHostPort(authority); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}
