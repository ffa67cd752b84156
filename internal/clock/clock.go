// Package clock abstracts the time operations the client schedules work
// with, so that polling, debouncing and server timestamps can be driven
// deterministically in tests.
//
// Production code uses Real(); tests use Fake() and Advance.
package clock

import "time"

// Clock is the subset of the time package used by the client.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for d, then calls f. The returned Timer cancels the
	// pending call with Stop. If d <= 0, f runs immediately.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a scheduled call created by AfterFunc.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the Timer from firing. It returns true if the call stops
// the timer, false if the timer has already fired or been stopped.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stopFunc: t.Stop}
}
