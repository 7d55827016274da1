// Package netaddr canonicalizes remote peer addresses for use as address
// book identities, and provides a stable total order over them.
package netaddr

import "net/netip"

// Endpoint is a canonicalized (IP, port) pair identifying a remote peer.
// Two Endpoints constructed from equivalent addresses (e.g. an IPv4
// address and its v4-mapped-in-v6 form) always compare equal.
type Endpoint struct {
	IP   netip.Addr
	Port uint16
}

// Canonical returns the canonical form of ip/port: v4-mapped-in-v6
// addresses collapse to plain v4, loopback is preserved as-is. Invalid
// (zero-value) IPs canonicalize to the unspecified IPv4 address, so
// callers can rely on IsUnspecifiedOrZeroPort flagging them rather than
// handling a separate invalid state.
func Canonical(ip netip.Addr, port uint16) Endpoint {
	if !ip.IsValid() {
		ip = netip.IPv4Unspecified()
	}
	return Endpoint{IP: ip.Unmap(), Port: port}
}

// IsUnspecifiedOrZeroPort reports whether e cannot be a valid outbound
// dial target: an unspecified IP (0.0.0.0 or ::) or port 0.
func (e Endpoint) IsUnspecifiedOrZeroPort() bool {
	return e.IP.IsUnspecified() || e.Port == 0
}

// Compare orders Endpoints the way spec.md's total order's tie-break
// keys 7-8 require: IPv4 before IPv6, then octet-wise ascending within
// a family, then port ascending. It returns a negative number, zero, or
// a positive number as e is less than, equal to, or greater than o.
func Compare(e, o Endpoint) int {
	eIs4, oIs4 := e.IP.Is4(), o.IP.Is4()
	switch {
	case eIs4 && !oIs4:
		return -1
	case !eIs4 && oIs4:
		return 1
	}

	if c := e.IP.Compare(o.IP); c != 0 {
		return c
	}

	switch {
	case e.Port < o.Port:
		return -1
	case e.Port > o.Port:
		return 1
	default:
		return 0
	}
}
