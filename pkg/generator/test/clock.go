package test

import "time"

// FixedClock returns a clock function frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
