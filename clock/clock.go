// Package clock abstracts wall time so adapters with fixed hardware
// delays can be tested deterministically.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time and a blocking sleep. Adapters take
// a Clock instead of calling the time package directly.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// System returns the real-time clock.
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Manual is a Clock under test control. Sleep does not block: it
// advances the virtual time by the requested duration and records it,
// so a polling loop observes exactly the delays it asked for.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewManual returns a Manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	m.slept = append(m.slept, d)
}

// Advance moves the virtual time forward without recording a sleep.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Slept returns every duration passed to Sleep, in order.
func (m *Manual) Slept() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.slept))
	copy(out, m.slept)
	return out
}
