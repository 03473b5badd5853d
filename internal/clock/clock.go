package clock

import (
	"sync"
	"time"
)

// Clock is the source of "now" for anything that compares against the
// current moment.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in a fixed location. Times are naive local
// time: no per-user or per-professional zones exist.
type System struct {
	Location *time.Location
}

func NewSystem() System {
	return System{Location: time.Local}
}

func (s System) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

// Manual is a controllable clock for tests.
type Manual struct {
	mu      sync.Mutex
	current time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
	return m.current
}
