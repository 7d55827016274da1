package netaddr

import (
	"errors"
	"net"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// ErrUnsupportedMultiaddr is returned when a multiaddr has no
// resolvable IP/TCP or IP/UDP component (e.g. a bare /p2p-circuit or
// unresolved /dns4 address).
var ErrUnsupportedMultiaddr = errors.New("netaddr: multiaddr has no IP/TCP or IP/UDP component")

// FromMultiaddr extracts the canonical Endpoint from a libp2p multiaddr,
// the way peermanager.go's extractIPv6TCPAddr pulls IP/port components
// out of a connection's remote multiaddr.
func FromMultiaddr(m ma.Multiaddr) (Endpoint, error) {
	netAddr, err := manet.ToNetAddr(m)
	if err != nil {
		return Endpoint{}, ErrUnsupportedMultiaddr
	}

	switch v := netAddr.(type) {
	case *net.TCPAddr:
		ap := v.AddrPort()
		return Canonical(ap.Addr(), ap.Port()), nil
	case *net.UDPAddr:
		ap := v.AddrPort()
		return Canonical(ap.Addr(), ap.Port()), nil
	default:
		return Endpoint{}, ErrUnsupportedMultiaddr
	}
}
