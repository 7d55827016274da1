package meta

import (
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
)

// ChangeKind discriminates the six kinds of observation the core can
// fold into a PeerRecord.
type ChangeKind int

const (
	// ChangeNewGossiped: learned from a peer's address-gossip message.
	ChangeNewGossiped ChangeKind = iota
	// ChangeNewAlternate: self-address from a handshake message.
	ChangeNewAlternate
	// ChangeNewLocal: our own listener address.
	ChangeNewLocal
	// ChangeUpdateAttempt: an outbound dial has just started.
	ChangeUpdateAttempt
	// ChangeUpdateResponded: a valid message was just received.
	ChangeUpdateResponded
	// ChangeUpdateFailed: a dial or open connection just failed.
	ChangeUpdateFailed
)

// Change is a tagged variant describing one observation about one
// endpoint. It carries only the fields appropriate to its Kind; the
// constructors below are the only supported way to build one, so a
// Change is always internally consistent with its Kind.
//
// Per spec.md's design note to keep the fold testable, every
// time-valued field a Change contributes is attached by its
// constructor from an explicit parameter — nothing in this package
// reads a clock.
type Change struct {
	Kind     ChangeKind
	Endpoint netaddr.Endpoint

	untrustedServices *ServiceFlags
	untrustedLastSeen *Timestamp

	services *ServiceFlags

	attemptAt   *time.Time
	respondedAt *Timestamp
	failureAt   *time.Time
}

// NewGossipedChange builds a ChangeNewGossiped: an address learned
// from a peer's gossip message, with the services and last-seen time
// it claimed — both untrusted until we've dialed the peer ourselves.
func NewGossipedChange(ep netaddr.Endpoint, untrustedServices ServiceFlags, untrustedLastSeen Timestamp) Change {
	return Change{
		Kind:              ChangeNewGossiped,
		Endpoint:          ep,
		untrustedServices: &untrustedServices,
		untrustedLastSeen: &untrustedLastSeen,
	}
}

// NewAlternateChange builds a ChangeNewAlternate: the self-reported
// address a counterparty gave us in its own handshake message.
func NewAlternateChange(ep netaddr.Endpoint, untrustedServices ServiceFlags) Change {
	return Change{
		Kind:              ChangeNewAlternate,
		Endpoint:          ep,
		untrustedServices: &untrustedServices,
	}
}

// NewLocalChange builds a ChangeNewLocal: our own listener address.
// It implicitly asserts NodeNetwork and contributes now as the
// untrusted last-seen time (we know our own listener is up).
func NewLocalChange(ep netaddr.Endpoint, now Timestamp) Change {
	services := NodeNetwork
	return Change{
		Kind:              ChangeNewLocal,
		Endpoint:          ep,
		untrustedServices: &services,
		untrustedLastSeen: &now,
	}
}

// NewAttemptChange builds a ChangeUpdateAttempt, recording attemptAt
// as the moment an outbound dial started.
func NewAttemptChange(ep netaddr.Endpoint, attemptAt time.Time) Change {
	return Change{
		Kind:      ChangeUpdateAttempt,
		Endpoint:  ep,
		attemptAt: &attemptAt,
	}
}

// NewRespondedChange builds a ChangeUpdateResponded for a peer that
// has just sent us a valid message. The caller must supply the remote
// address of an outbound connection and the services seen during that
// connection's handshake — never an unverified, peer-supplied value —
// or a malicious peer could corrupt another peer's address-book state.
func NewRespondedChange(ep netaddr.Endpoint, services ServiceFlags, respondedAt Timestamp) Change {
	return Change{
		Kind:        ChangeUpdateResponded,
		Endpoint:    ep,
		services:    &services,
		respondedAt: &respondedAt,
	}
}

// NewFailedChange builds a ChangeUpdateFailed for a peer whose dial or
// open connection just failed. services is optional: pass nil when no
// services observation accompanies the failure.
func NewFailedChange(ep netaddr.Endpoint, services *ServiceFlags, failureAt time.Time) Change {
	return Change{
		Kind:      ChangeUpdateFailed,
		Endpoint:  ep,
		services:  services,
		failureAt: &failureAt,
	}
}

// NewShutdownChange builds the change recorded when a peer shuts down
// after we had an open connection to it. Per spec.md's open question,
// graceful shutdown from Responded is not distinguished from any other
// failure; this is a thin alias for NewFailedChange kept for call-site
// clarity at shutdown handling code.
func NewShutdownChange(ep netaddr.Endpoint, services *ServiceFlags, failureAt time.Time) Change {
	return NewFailedChange(ep, services, failureAt)
}

// ImpliedState returns the PeerState this change would set.
func (c Change) ImpliedState() PeerState {
	switch c.Kind {
	case ChangeNewGossiped:
		return NeverAttemptedGossiped
	case ChangeNewAlternate:
		return NeverAttemptedAlternate
	case ChangeNewLocal:
		// Local listener changes are always sanitized before
		// exposure, so the exact never-attempted sub-state doesn't
		// matter here.
		return NeverAttemptedGossiped
	case ChangeUpdateAttempt:
		return AttemptPending
	case ChangeUpdateResponded:
		return Responded
	case ChangeUpdateFailed:
		return Failed
	default:
		panic("meta: unknown ChangeKind")
	}
}

// IsNew reports whether c is one of the three New… variants that can
// create a record from nothing.
func (c Change) IsNew() bool {
	switch c.Kind {
	case ChangeNewGossiped, ChangeNewAlternate, ChangeNewLocal:
		return true
	default:
		return false
	}
}

// UntrustedServices returns the services this change claims, if any.
func (c Change) UntrustedServices() (ServiceFlags, bool) {
	if c.untrustedServices != nil {
		return *c.untrustedServices, true
	}
	return 0, false
}

// UntrustedLastSeenContribution returns the untrusted last-seen time
// this change carries, if any.
func (c Change) UntrustedLastSeenContribution() (Timestamp, bool) {
	if c.untrustedLastSeen != nil {
		return *c.untrustedLastSeen, true
	}
	return 0, false
}

// Services returns the directly-observed services this change
// carries, if any (only UpdateResponded and, optionally,
// UpdateFailed contribute one).
func (c Change) Services() (ServiceFlags, bool) {
	if c.services != nil {
		return *c.services, true
	}
	return 0, false
}

// LastAttemptContribution returns the local instant this change
// contributes to last_attempt, if any.
func (c Change) LastAttemptContribution() (time.Time, bool) {
	if c.attemptAt != nil {
		return *c.attemptAt, true
	}
	return time.Time{}, false
}

// LastResponseContribution returns the timestamp this change
// contributes to last_response, if any.
func (c Change) LastResponseContribution() (Timestamp, bool) {
	if c.respondedAt != nil {
		return *c.respondedAt, true
	}
	return 0, false
}

// LastFailureContribution returns the local instant this change
// contributes to last_failure, if any.
func (c Change) LastFailureContribution() (time.Time, bool) {
	if c.failureAt != nil {
		return *c.failureAt, true
	}
	return time.Time{}, false
}

// intoNewRecord builds a fresh PeerRecord from c, for the case where
// there is no previous record. Only the three New… variants can
// succeed; everything else returns ok=false, since updates require a
// prior record to update.
func (c Change) intoNewRecord() (PeerRecord, bool) {
	if !c.IsNew() {
		return PeerRecord{}, false
	}

	services, ok := c.UntrustedServices()
	if !ok {
		panic("meta: New change missing services")
	}

	var untrustedLastSeen *Timestamp
	if ts, ok := c.UntrustedLastSeenContribution(); ok {
		untrustedLastSeen = &ts
	}

	return PeerRecord{
		Endpoint:          c.Endpoint,
		Services:          services,
		State:             c.ImpliedState(),
		UntrustedLastSeen: untrustedLastSeen,
	}, true
}
