package clock

import "time"

// Clock supplies the current time. Session expiry and account timestamps read
// through it so tests can pin and advance time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// New creates a System clock
func New() *System {
	return &System{}
}

// Now returns the current time in UTC
func (System) Now() time.Time {
	return time.Now().UTC()
}
