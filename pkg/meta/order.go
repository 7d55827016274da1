package meta

import (
	"time"

	"github.com/shurlinet/zaddr/internal/netaddr"
)

// Compare is the total order over records used for reconnection
// priority (§4.6). It returns a negative number, zero, or a positive
// number as a sorts before, equal to, or after b. This is the sole
// source of truth for "which peer next" — callers must not substitute
// an ad-hoc comparison.
func Compare(a, b PeerRecord) int {
	if c := compareState(a.State, b.State); c != 0 {
		return c
	}
	if c := compareOptionalTime(a.LastAttempt, b.LastAttempt); c != 0 {
		return c
	}
	if c := compareOptionalTime(a.LastFailure, b.LastFailure); c != 0 {
		return c
	}
	if c := compareOptionalTimestamp(a.LastResponse, b.LastResponse); c != 0 {
		return c
	}
	// Descending: more recently gossiped sorts first.
	if c := compareOptionalTimestamp(a.UntrustedLastSeen, b.UntrustedLastSeen); c != 0 {
		return -c
	}
	if a.Services != b.Services {
		if a.Services < b.Services {
			return -1
		}
		return 1
	}
	return netaddr.Compare(a.Endpoint, b.Endpoint)
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b PeerRecord) bool {
	return Compare(a, b) < 0
}

// compareOptionalTime orders two optional local instants with nil
// (never happened) sorting before any concrete time, ascending —
// "None is less than Some(t)" from the original ordering rule.
func compareOptionalTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}

// compareOptionalTimestamp is compareOptionalTime's analogue for the
// trusted-clock Timestamp fields.
func compareOptionalTimestamp(a, b *Timestamp) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
