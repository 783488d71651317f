// ABOUTME: Clock capability injected into the network services
// ABOUTME: System clock for production and a fixed clock for tests
package network

import "time"

// Clock supplies the current time to the state machines.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// FixedClock always returns t. Useful for tests and replays.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
