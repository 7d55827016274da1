package meta

import "time"

// Policy constants consumed by external components (the reconnection
// scheduler, the handshake starter, the DNS seeder). The core itself
// reads only MinPeerReconnectionDelay and MaxPeerActiveForGossip (in
// the scheduler predicates in schedule.go) and
// TimestampTruncationSeconds (in sanitize.go).
const (
	// RequestTimeout bounds a single request made to a remote peer.
	RequestTimeout = 20 * time.Second

	// HandshakeTimeout bounds a connection handshake. Kept small so
	// slow peers don't linger in the peer set, which matters most on
	// bandwidth-constrained nodes and on testnet.
	HandshakeTimeout = 4 * time.Second

	// HeartbeatInterval is how often we send a keepalive to each
	// connected peer.
	HeartbeatInterval = 60 * time.Second

	// MinPeerReconnectionDelay is the minimum time we expect to go
	// without hearing from a live peer before treating it as gone: the
	// sum of the heartbeat interval and three request timeouts (a
	// pending request, a queued request, and the heartbeat request
	// itself).
	MinPeerReconnectionDelay = HeartbeatInterval + RequestTimeout + RequestTimeout + RequestTimeout

	// MaxPeerActiveForGossip is the maximum time since a peer was last
	// seen for it to still be considered reachable enough to gossip.
	MaxPeerActiveForGossip = 3 * time.Hour

	// MinPeerConnectionInterval bounds how often a new outbound dial
	// may be started, to resist denial-of-service via connection
	// churn.
	MinPeerConnectionInterval = 100 * time.Millisecond

	// MinPeerGetAddrInterval bounds how often address requests may be
	// sent, for the same reason.
	MinPeerGetAddrInterval = 10 * time.Second

	// GetAddrFanout is the number of GetAddr requests sent when
	// crawling for new peers; kept above 2 so no single peer can
	// dominate our initial address book.
	GetAddrFanout = 3

	// DNSLookupTimeout bounds a DNS seed lookup.
	DNSLookupTimeout = 5 * time.Second

	// TimestampTruncationSeconds is the window timestamps are rounded
	// down to before being gossiped, so a peer can't infer exactly
	// when we received a message from one of our other peers.
	TimestampTruncationSeconds uint32 = 30 * 60

	// EWMADefaultRTT is the default round-trip-time estimate assigned
	// to a newly-seen peer, kept above RequestTimeout so new peers
	// must prove they're fast before being preferred over established
	// ones.
	EWMADefaultRTT = RequestTimeout + time.Second

	// EWMADecayTime is the decay constant for the load-balancing RTT
	// estimate.
	EWMADecayTime = 200 * time.Second

	// UserAgent is the BIP-14-style user agent string advertised
	// during handshake.
	UserAgent = "/Zebra:1.0.0-alpha.15/"
)

// Magic identifies a Zcash network on the wire.
type Magic [4]byte

// Magic numbers identifying the production networks.
var (
	MainnetMagic = Magic{0x24, 0xe9, 0x27, 0x64}
	TestnetMagic = Magic{0xfa, 0x1a, 0xf9, 0xbf}
)

// MaxProtocolMessageLen bounds the size of a single protocol message,
// used to derive the preallocation bound for gossiped address lists.
const MaxProtocolMessageLen = 2 * 1024 * 1024

// metaAddrSize is the wire size of one gossiped record: 4 bytes time,
// 8 bytes services, 16 bytes IP, 2 bytes port.
const metaAddrSize = 4 + 8 + 16 + 2

// MaxGossipListLen is the largest number of gossiped records that can
// appear in a single message, given the worst-case 3-byte list-length
// prefix. Enforced before allocation in DecodeGossipList.
const MaxGossipListLen = (MaxProtocolMessageLen - 3) / metaAddrSize
