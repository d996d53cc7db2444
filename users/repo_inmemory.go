package users

import (
	"context"
	"sync"
	"time"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory user store. It backs local development runs
// when no database is configured, and the session-flow tests.
type InMemoryRepo struct {
	mu     sync.RWMutex
	users  map[int64]*User
	nextID int64
}

// NewInMemoryRepo creates an empty in-memory user store.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{users: make(map[int64]*User), nextID: 1}
}

// Add stores a user, assigning an ID when none is set, and returns the
// stored copy.
func (r *InMemoryRepo) Add(user User) *User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *InMemoryRepo) GetByIdentifier(_ context.Context, identifier string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == identifier || (user.Phone != "" && user.Phone == identifier) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, NotFoundErr
}

func (r *InMemoryRepo) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, NotFoundErr
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryRepo) SetLastLogin(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return NotFoundErr
	}
	user.LastLogin = &at
	return nil
}

// Delete removes a user by ID.
func (r *InMemoryRepo) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}
