package calendar

import "time"

// Clock abstracts "now" so every date-dependent subsystem shares one source
// of the current day and tests can inject a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test use only.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
