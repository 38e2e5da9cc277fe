package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/clubroster/internal/dependencies/random"
)

// MockRandom returns queued strings, then a numbered fallback so tokens stay unique
type MockRandom struct {
	mu     sync.Mutex
	queue  []string
	handed int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with the given results queued
func NewMockRandom(values ...string) *MockRandom {
	return &MockRandom{queue: values}
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handed++
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		return next
	}
	return fmt.Sprintf("mock%04d", r.handed)
}

// Queue appends values to the result queue
func (r *MockRandom) Queue(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, values...)
}

// Calls reports how many strings have been handed out
func (r *MockRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handed
}
