package audit

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity bounds the in-process log so a long-running console
// without a database does not grow without limit.
const DefaultMemoryCapacity = 1000

// MemoryRepo keeps the most recent events in process memory. It is the
// fallback when no database is configured.
type MemoryRepo struct {
	mu       sync.Mutex
	events   []Event
	capacity int
}

func NewMemoryRepo() *MemoryRepo { return NewMemoryRepoWithCapacity(DefaultMemoryCapacity) }

func NewMemoryRepoWithCapacity(capacity int) *MemoryRepo {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepo{capacity: capacity}
}

// Append stores e, evicting the oldest event once the repo is full.
func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.capacity {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, e)
	return nil
}

// Recent returns up to limit events, newest first.
func (r *MemoryRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, 0, n)
	for i := len(r.events) - 1; len(out) < n; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

// Events returns every retained event in insertion order.
func (r *MemoryRepo) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
