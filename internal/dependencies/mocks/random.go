package mocks

import (
	"github.com/mcoot/sequencegame/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. Queued results
// are returned first; once the queue is exhausted every call returns Fallback,
// clamped into range.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Fallback is returned when the queue is empty
	Fallback int

	// Calls records the n passed to every Intn call
	Calls []int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or Fallback if none remaining
func (r *MockRandom) Intn(n int) int {
	r.Calls = append(r.Calls, n)
	result := r.Fallback
	if r.intnIndex < len(r.IntnResults) {
		result = r.IntnResults[r.intnIndex]
		r.intnIndex++
	}
	if n <= 0 {
		return 0
	}
	if result >= n {
		return n - 1
	}
	if result < 0 {
		return 0
	}
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results and recorded calls
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.Calls = nil
}
