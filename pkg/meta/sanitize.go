package meta

// Sanitize projects r into the form sent to a remote peer during
// gossip, stripping every local and trust-sensitive field. It returns
// ok=false when r should not be gossiped at all.
func Sanitize(r PeerRecord) (PeerRecord, bool) {
	if !r.LastKnownInfoIsValidForOutbound() {
		return PeerRecord{}, false
	}

	lastSeen := r.LastSeen()
	if lastSeen == nil {
		return PeerRecord{}, false
	}

	truncated := lastSeen.TruncateTo(TimestampTruncationSeconds)

	return PeerRecord{
		Endpoint: r.Endpoint,
		// TODO: split untrusted and direct services; for now the
		// whole bitset is re-gossiped as-is.
		Services: r.Services,
		// The truncated time only ever goes in the untrusted field —
		// this matches how a deserialized gossiped record looks, and
		// avoids leaking which field we actually populated locally.
		UntrustedLastSeen: &truncated,
		State:             NeverAttemptedGossiped,
	}, true
}
