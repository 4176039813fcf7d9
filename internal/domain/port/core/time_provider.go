package core

import "time"

// TimeProvider abstracts wall-clock access so cooldowns, expiries and
// lockout windows can be tested with a fixed clock.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
