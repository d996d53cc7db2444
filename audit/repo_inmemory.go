package audit

import (
	"context"
	"sync"
	"time"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory audit log for local runs and tests.
type InMemoryRepo struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
}

// NewInMemoryRepo creates an empty in-memory audit log.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{nextID: 1}
}

func (r *InMemoryRepo) Record(_ context.Context, entry *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

// Entries returns a copy of all recorded entries in insertion order.
func (r *InMemoryRepo) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
