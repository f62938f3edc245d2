// Package clock provides a testable time source for timing codec operations.
package clock

import "time"

// Clock is an interface for getting the current time.
type Clock interface {
	Now() time.Time
}

// Real is the production clock -- uses system time.
type Real struct{}

// Now returns the current system time.
func (Real) Now() time.Time { return time.Now() }

// Since returns the time elapsed on c since t.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Mock is a controllable clock for tests. Every call to Now advances the
// clock by Step, which lets tests observe a fixed, non-zero latency per
// timed operation.
type Mock struct {
	current time.Time
	Step    time.Duration
}

// NewMock creates a Mock clock set to the given time.
func NewMock(t time.Time) *Mock {
	if t.IsZero() {
		t = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Mock{current: t}
}

// Now returns the mock clock's current time, then advances it by Step.
func (m *Mock) Now() time.Time {
	now := m.current
	m.current = m.current.Add(m.Step)
	return now
}

// Advance moves the clock forward by the given duration.
func (m *Mock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}
