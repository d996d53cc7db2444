package devices

import (
	"context"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory device-binding store for tests.
type InMemoryRepo struct {
	mu       sync.RWMutex
	bindings map[string]int64
}

// NewInMemoryRepo creates an empty in-memory binding store.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{bindings: make(map[string]int64)}
}

func (r *InMemoryRepo) Get(_ context.Context, deviceID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.bindings[deviceID]
	if !ok {
		return 0, NotRegisteredErr
	}
	return userID, nil
}

func (r *InMemoryRepo) Bind(_ context.Context, deviceID string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[deviceID] = userID
	return nil
}
