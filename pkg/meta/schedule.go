package meta

import "time"

// HasRecentlyResponded reports whether r has a last_response within
// MinPeerReconnectionDelay of now. Future-dated timestamps count as
// recent, since SaturatingElapsed clamps them to zero.
func (r PeerRecord) HasRecentlyResponded(now time.Time) bool {
	if r.LastResponse == nil {
		return false
	}
	return r.LastResponse.SaturatingElapsed(now) <= MinPeerReconnectionDelay
}

// WasRecentlyAttempted reports whether r has a last_attempt within
// MinPeerReconnectionDelay of now.
func (r PeerRecord) WasRecentlyAttempted(now time.Time) bool {
	if r.LastAttempt == nil {
		return false
	}
	return saturatingElapsedTime(*r.LastAttempt, now) <= MinPeerReconnectionDelay
}

// HasRecentlyFailed reports whether r has a last_failure within
// MinPeerReconnectionDelay of now.
func (r PeerRecord) HasRecentlyFailed(now time.Time) bool {
	if r.LastFailure == nil {
		return false
	}
	return saturatingElapsedTime(*r.LastFailure, now) <= MinPeerReconnectionDelay
}

// IsActiveForGossip reports whether r's effective last-seen is within
// MaxPeerActiveForGossip of now, i.e. recent enough to still be worth
// advertising to other peers.
func (r PeerRecord) IsActiveForGossip(now time.Time) bool {
	lastSeen := r.LastSeen()
	if lastSeen == nil {
		return false
	}
	return lastSeen.SaturatingElapsed(now) <= MaxPeerActiveForGossip
}

// IsReadyForConnectionAttempt reports whether r should be offered to
// the reconnection scheduler right now.
func (r PeerRecord) IsReadyForConnectionAttempt(now time.Time) bool {
	return r.LastKnownInfoIsValidForOutbound() &&
		!r.HasRecentlyResponded(now) &&
		!r.WasRecentlyAttempted(now) &&
		!r.HasRecentlyFailed(now)
}

// saturatingElapsedTime is the time.Time analogue of
// Timestamp.SaturatingElapsed, for the two local-instant fields.
func saturatingElapsedTime(t, now time.Time) time.Duration {
	elapsed := now.Sub(t)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
