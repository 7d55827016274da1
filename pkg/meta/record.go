package meta

import (
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
)

// PeerRecord is the central entity of this package: an endpoint, the
// services it has advertised, our last-interaction state, and the
// four optional timestamps that back the scheduler predicates and
// ordering.
//
// PeerRecord is a value type. The address book that owns a collection
// of these holds them by endpoint identity and is responsible for all
// locking; nothing in this package mutates a PeerRecord in place.
type PeerRecord struct {
	Endpoint netaddr.Endpoint
	Services ServiceFlags
	State    PeerState

	// UntrustedLastSeen is the unverified last-seen time gossiped by
	// whichever peer told us about this endpoint.
	UntrustedLastSeen *Timestamp

	// LastResponse is the last time we received a valid message from
	// this peer, in our own clock.
	LastResponse *Timestamp

	// LastAttempt is the local instant of our last outbound dial
	// attempt. Never part of the wire encoding.
	LastAttempt *time.Time

	// LastFailure is the local instant our last connection with this
	// peer failed. Never part of the wire encoding.
	LastFailure *time.Time
}

// LastSeen returns the effective last-seen time: LastResponse if set,
// else UntrustedLastSeen.
func (r PeerRecord) LastSeen() *Timestamp {
	if r.LastResponse != nil {
		return r.LastResponse
	}
	return r.UntrustedLastSeen
}

// AddressIsValidForOutbound reports whether the record's endpoint
// could ever be dialed: specified IP, non-zero port. Because
// endpoints are unique identities in the address book, this check can
// be used to permanently reject an entire record.
func (r PeerRecord) AddressIsValidForOutbound() bool {
	return !r.Endpoint.IsUnspecifiedOrZeroPort()
}

// LastKnownInfoIsValidForOutbound reports whether the record's
// last-known services and address make it eligible for an outbound
// attempt. Unlike AddressIsValidForOutbound, this can flip back and
// forth as services are updated, so it can only be used to reject a
// single change, or temporarily pause connections — not to evict a
// record permanently.
func (r PeerRecord) LastKnownInfoIsValidForOutbound() bool {
	return r.Services.Has(NodeNetwork) && r.AddressIsValidForOutbound()
}

// maxTime returns the later of two optional local instants, treating
// an absent value as less than any present one — the same pointwise
// supremum rule maxTimestamp applies to trusted wall-clock times.
func maxTime(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case !a.Before(*b):
		return a
	default:
		return b
	}
}

// checkInvariants panics if r's state and timestamps disagree: a
// Responded, AttemptPending or Failed record missing its matching
// timestamp, or a never-attempted record with any local interaction
// timestamp set. It does not check endpoint canonicity, timestamp
// monotonicity across updates, or outbound validity. It is called
// after every fold in Apply; a violation here means a bug in this
// package, not bad input.
func (r PeerRecord) checkInvariants() {
	switch r.State {
	case Responded:
		if r.LastResponse == nil {
			panic("meta: Responded record missing LastResponse")
		}
	case AttemptPending:
		if r.LastAttempt == nil {
			panic("meta: AttemptPending record missing LastAttempt")
		}
	case Failed:
		if r.LastFailure == nil {
			panic("meta: Failed record missing LastFailure")
		}
	}

	if r.State.IsNeverAttempted() {
		if r.LastResponse != nil || r.LastAttempt != nil || r.LastFailure != nil {
			panic("meta: never-attempted record has a local interaction timestamp set")
		}
	}
}
