package meta

import (
	"encoding/binary"
	"net/netip"

	"github.com/shurlinet/zaddr/internal/netaddr"
)

// Encode writes the 30-byte wire form of a sanitized record: a 4-byte
// little-endian last-seen time, an 8-byte little-endian services
// bitset, a 16-byte IPv6-form IP (v4 addresses encoded as
// v4-mapped-in-v6), and a 2-byte big-endian port.
//
// Encode does not sanitize r itself; callers are expected to pass the
// result of Sanitize.
func Encode(r PeerRecord) [metaAddrSize]byte {
	var buf [metaAddrSize]byte

	lastSeen := r.LastSeen()
	if lastSeen == nil {
		panic("meta: Encode called on a record with no last-seen time; sanitize it first")
	}

	binary.LittleEndian.PutUint32(buf[0:4], uint32(*lastSeen))
	binary.LittleEndian.PutUint64(buf[4:12], uint64(r.Services))

	as16 := r.Endpoint.IP.As16()
	copy(buf[12:28], as16[:])

	binary.BigEndian.PutUint16(buf[28:30], r.Endpoint.Port)

	return buf
}

// Decode parses the 30-byte wire form of a gossiped record into a
// PeerRecord with state NeverAttemptedGossiped and only
// UntrustedLastSeen set, the way a freshly-received gossiped address
// always starts out.
func Decode(buf []byte) (PeerRecord, error) {
	if len(buf) != metaAddrSize {
		return PeerRecord{}, ErrDeserialization
	}

	lastSeen := Timestamp(binary.LittleEndian.Uint32(buf[0:4]))
	services := ServiceFlags(binary.LittleEndian.Uint64(buf[4:12]))

	var ipBytes [16]byte
	copy(ipBytes[:], buf[12:28])
	ip := netip.AddrFrom16(ipBytes)
	port := binary.BigEndian.Uint16(buf[28:30])

	return PeerRecord{
		Endpoint:          netaddr.Canonical(ip, port),
		Services:          services,
		State:             NeverAttemptedGossiped,
		UntrustedLastSeen: &lastSeen,
	}, nil
}

// DecodeGossipList decodes a length-prefixed list of gossiped records:
// a 4-byte little-endian element count followed by that many 30-byte
// records. The count is checked against MaxGossipListLen before any
// allocation is made, so a hostile length prefix can't force a large
// allocation.
func DecodeGossipList(buf []byte) ([]PeerRecord, error) {
	if len(buf) < 4 {
		return nil, ErrDeserialization
	}

	count := binary.LittleEndian.Uint32(buf[0:4])
	if count > MaxGossipListLen {
		return nil, ErrDeserialization
	}

	buf = buf[4:]
	if uint64(len(buf)) != uint64(count)*uint64(metaAddrSize) {
		return nil, ErrDeserialization
	}

	records := make([]PeerRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		start := i * metaAddrSize
		rec, err := Decode(buf[start : start+metaAddrSize])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeGossipList is the inverse of DecodeGossipList.
func EncodeGossipList(records []PeerRecord) []byte {
	out := make([]byte, 4+len(records)*metaAddrSize)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(records)))
	for i, r := range records {
		enc := Encode(r)
		copy(out[4+i*metaAddrSize:], enc[:])
	}
	return out
}
