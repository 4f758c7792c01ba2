package runner

import (
	"time"
)

// A more predictable timer than time.Timer: it is polled instead of
// delivering on a channel.
type Timer struct {
	deadline time.Time
	stopped  bool
	now      func() time.Time
}

func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, stopped: true}
}

// Reset returns true if the timer has not timed out, and false if it
// has timed out or been stopped.
func (t *Timer) Reset(d time.Duration) bool {
	now := t.now()
	ret := now.Before(t.deadline) && !t.stopped
	t.stopped = false
	t.deadline = now.Add(d)
	return ret
}

func (t *Timer) Stop() bool {
	t.stopped = true
	return t.now().Before(t.deadline)
}

func (t *Timer) HasTimedOut() bool {
	return !t.now().Before(t.deadline) && !t.stopped
}

// Remaining returns the time left until the deadline, or zero.
func (t *Timer) Remaining() time.Duration {
	if d := t.deadline.Sub(t.now()); d > 0 {
		return d
	}
	return 0
}
