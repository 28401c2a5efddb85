package scraper

import (
	"sync"

	"github.com/aleister1102/pagewatch/internal/models"
)

// RollingBuffer holds the most recent fetch results up to a fixed capacity.
// When full, appending evicts the oldest entry. All methods are safe for
// concurrent use; the loop appends while shutdown paths read.
type RollingBuffer struct {
	mu       sync.Mutex
	results  []models.FetchResult
	capacity int
}

// NewRollingBuffer creates a buffer bounded at the given capacity.
func NewRollingBuffer(capacity int) *RollingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RollingBuffer{
		results:  make([]models.FetchResult, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a result, evicting the oldest entry when the buffer is full.
func (rb *RollingBuffer) Append(result models.FetchResult) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if len(rb.results) == rb.capacity {
		copy(rb.results, rb.results[1:])
		rb.results = rb.results[:rb.capacity-1]
	}
	rb.results = append(rb.results, result)
}

// Len returns the current number of buffered results.
func (rb *RollingBuffer) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return len(rb.results)
}

// Tail returns a copy of the newest n results in chronological order. When
// fewer than n are buffered, all of them are returned.
func (rb *RollingBuffer) Tail(n int) []models.FetchResult {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if n > len(rb.results) {
		n = len(rb.results)
	}
	tail := make([]models.FetchResult, n)
	copy(tail, rb.results[len(rb.results)-n:])
	return tail
}

// All returns a copy of the whole buffer in chronological order.
func (rb *RollingBuffer) All() []models.FetchResult {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	all := make([]models.FetchResult, len(rb.results))
	copy(all, rb.results)
	return all
}

// Last returns the most recent successful result, or nil when none exists.
// Change detection compares each new snapshot against this.
func (rb *RollingBuffer) Last() *models.FetchResult {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i := len(rb.results) - 1; i >= 0; i-- {
		if rb.results[i].IsSuccess() {
			result := rb.results[i]
			return &result
		}
	}
	return nil
}
