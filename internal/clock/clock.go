// Package clock supplies the wall-clock and monotonic time sources that
// pkg/meta's change constructors take as explicit parameters, so the
// core never reads ambient time itself and tests can fake it.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock is the time source interface consumed by callers that construct
// meta.Change values. It is satisfied by both Real and a *bclock.Mock.
type Clock interface {
	Now() time.Time
}

// Real returns a Clock backed by the system clock.
func Real() Clock {
	return bclock.New()
}

// Mock returns a fresh benbjohnson/clock mock, fixed at the Unix epoch
// until advanced by the caller (Mock.Add / Mock.Set).
func Mock() *bclock.Mock {
	return bclock.NewMock()
}
