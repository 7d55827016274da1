package meta

import "time"

// Timestamp is an unsigned 32-bit count of seconds since the Unix
// epoch. It is the on-the-wire and untrusted-provenance time
// representation; local instants (last_attempt, last_failure) use
// time.Time instead and are never part of the wire encoding.
type Timestamp uint32

// NewTimestamp truncates t to a Timestamp, clamping to zero for times
// before the epoch.
func NewTimestamp(t time.Time) Timestamp {
	secs := t.Unix()
	if secs < 0 {
		return 0
	}
	if secs > int64(^uint32(0)) {
		return Timestamp(^uint32(0))
	}
	return Timestamp(secs)
}

// Time returns the time.Time this Timestamp denotes.
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// SaturatingElapsed returns the duration between ts and now, clamped
// to zero if ts is in the future (future-dated timestamps are treated
// as "recent" rather than producing a negative duration).
func (ts Timestamp) SaturatingElapsed(now time.Time) time.Duration {
	elapsed := now.Sub(ts.Time())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// CheckedSub subtracts secs seconds from ts, returning false if that
// would underflow below the epoch.
func (ts Timestamp) CheckedSub(secs uint32) (Timestamp, bool) {
	if secs > uint32(ts) {
		return 0, false
	}
	return ts - Timestamp(secs), true
}

// TruncateTo rounds ts down to the nearest multiple of window seconds,
// the way the sanitizer truncates last-seen times before gossiping
// them.
func (ts Timestamp) TruncateTo(window uint32) Timestamp {
	if window == 0 {
		return ts
	}
	remainder := uint32(ts) % window
	truncated, ok := ts.CheckedSub(remainder)
	if !ok {
		// Unreachable: remainder is ts % window, which never exceeds ts.
		return ts
	}
	return truncated
}

// maxTimestamp returns the later of two optional Timestamps, treating
// an absent value as less than any present one. This is the pointwise
// supremum operation change-application relies on for commutativity.
func maxTimestamp(a, b *Timestamp) *Timestamp {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *a >= *b:
		return a
	default:
		return b
	}
}
