package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a manually driven clock for tests
// Frame-rate tests advance it by the frame interval between dispatches
type MockTimeProvider struct {
	now atomic.Pointer[time.Time]
}

// NewMockTimeProvider creates a clock stopped at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.SetTime(start)
	return m
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	return *m.now.Load()
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.now.Store(&t)
}

// Advance moves the clock forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	for {
		old := m.now.Load()
		next := old.Add(d)
		if m.now.CompareAndSwap(old, &next) {
			return next
		}
	}
}
