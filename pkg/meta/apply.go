package meta

// Apply folds change c onto an optional previous record, producing
// the next record, or rejecting it.
//
// previous should be nil when no record exists yet for c.Endpoint.
// The bool result is false exactly when the change is rejected: this
// is a normal, silent, design-level outcome (never an error) per
// spec.md §7.
func Apply(c Change, previous *PeerRecord) (PeerRecord, bool) {
	if previous == nil {
		return c.intoNewRecord()
	}

	if previous.Endpoint != c.Endpoint {
		panic("meta: Apply called with mismatched endpoint")
	}

	previousAttempted := !previous.State.IsNeverAttempted()
	changeToNeverAttempted := c.IsNew() && c.ImpliedState().IsNeverAttempted()

	var next PeerRecord
	switch {
	case changeToNeverAttempted && previousAttempted:
		// Case A: once we've made an attempt, further unsolicited
		// gossip must not reset history or reorder the dial queue —
		// otherwise an adversary could keep refreshing a target to
		// the top by repeatedly "rediscovering" it.
		return PeerRecord{}, false

	case changeToNeverAttempted && !previousAttempted:
		// Case B: both previous and incoming are never-attempted.
		// Preserve the original services and timestamps; only fill in
		// a missing untrusted_last_seen, and take the incoming change's
		// never-attempted state. Letting later gossip churn an
		// unattempted record would hand an adversary the same
		// reordering lever as Case A.
		untrustedLastSeen := previous.UntrustedLastSeen
		if untrustedLastSeen == nil {
			if ts, ok := c.UntrustedLastSeenContribution(); ok {
				untrustedLastSeen = &ts
			}
		}
		next = PeerRecord{
			Endpoint:          c.Endpoint,
			Services:          previous.Services,
			State:             c.ImpliedState(),
			UntrustedLastSeen: untrustedLastSeen,
		}

	default:
		// Case C: an Update against an existing record. Ignore
		// changes to earlier times so the effective reconnection
		// timeout holds even when changes are applied out of order;
		// take the latest verified services even if that bitset has
		// fewer bits than before.
		services := previous.Services
		if s, ok := c.Services(); ok {
			services = s
		}

		lastResponse := previous.LastResponse
		if ts, ok := c.LastResponseContribution(); ok {
			lastResponse = maxTimestamp(lastResponse, &ts)
		}

		lastAttempt := previous.LastAttempt
		if t, ok := c.LastAttemptContribution(); ok {
			lastAttempt = maxTime(lastAttempt, &t)
		}

		lastFailure := previous.LastFailure
		if t, ok := c.LastFailureContribution(); ok {
			lastFailure = maxTime(lastFailure, &t)
		}

		next = PeerRecord{
			Endpoint: c.Endpoint,
			Services: services,
			// Only never-attempted changes may modify this field.
			UntrustedLastSeen: previous.UntrustedLastSeen,
			LastResponse:      lastResponse,
			LastAttempt:       lastAttempt,
			LastFailure:       lastFailure,
			State:             c.ImpliedState(),
		}
	}

	next.checkInvariants()
	return next, true
}
