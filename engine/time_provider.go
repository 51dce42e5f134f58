package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider is the loop's clock
type TimeProvider interface {
	Now() time.Time
}

// SystemTimeProvider reads the wall clock with its monotonic component
type SystemTimeProvider struct{}

func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for tests and headless simulation
// Safe for concurrent use
type MockTimeProvider struct {
	start  time.Time
	offset atomic.Int64 // nanoseconds since start
}

// NewMockTimeProvider creates a mock clock reading start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.start.Add(time.Duration(m.offset.Load()))
}

// Advance moves the clock forward by d and returns the new reading
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	return m.start.Add(time.Duration(m.offset.Add(int64(d))))
}

// Elapsed returns the total advanced duration
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}
