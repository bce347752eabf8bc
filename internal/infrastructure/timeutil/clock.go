// Package timeutil provides a clock abstraction and display formatting for
// schedule times.
package timeutil

import "time"

// Clock abstracts time.Now so event timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock creates a RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FrozenClock reports a fixed instant until moved. Test use only.
type FrozenClock struct {
	at time.Time
}

// NewFrozenClock creates a clock pinned to t.
func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{at: t}
}

// Now returns the pinned instant.
func (f *FrozenClock) Now() time.Time {
	return f.at
}

// Set pins the clock to a new instant.
func (f *FrozenClock) Set(t time.Time) {
	f.at = t
}

// Advance moves the pinned instant forward by d.
func (f *FrozenClock) Advance(d time.Duration) {
	f.at = f.at.Add(d)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*FrozenClock)(nil)
)
