package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"net/netip"

	"github.com/shurlinet/zaddr/internal/netaddr"
	"github.com/shurlinet/zaddr/pkg/meta"
)

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	ip := fs.String("ip", "", "IP address")
	port := fs.Uint("port", 0, "port")
	services := fs.Uint64("services", uint64(meta.NodeNetwork), "services bitset")
	lastSeen := fs.Uint64("last-seen", 0, "last-seen time, as a truncated 32-bit Unix timestamp")
	if err := fs.Parse(args); err != nil {
		osExit(2)
	}

	addr, err := netip.ParseAddr(*ip)
	if err != nil {
		fatal("encode: invalid --ip %q: %v", *ip, err)
	}

	r := meta.PeerRecord{
		Endpoint:          netaddr.Canonical(addr, uint16(*port)),
		Services:          meta.ServiceFlags(*services),
		State:             meta.NeverAttemptedGossiped,
		UntrustedLastSeen: timestampPtr(meta.Timestamp(*lastSeen)),
	}

	encoded := meta.Encode(r)
	fmt.Println(hex.EncodeToString(encoded[:]))
}

func timestampPtr(ts meta.Timestamp) *meta.Timestamp {
	return &ts
}
