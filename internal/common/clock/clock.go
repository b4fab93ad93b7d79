// Package clock is the time source for rounds, wagers and settlements.
package clock

import "time"

// Precision is the resolution timestamps are recorded at. The settlement
// archive stores milliseconds, so nothing finer is ever produced.
const Precision = time.Millisecond

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/dicepool/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock in UTC at Precision
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}
