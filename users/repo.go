package users

import (
	"context"
	"errors"
	"time"
)

var (
	// NotFoundErr is returned when no user matches the lookup.
	NotFoundErr = errors.New("user not found")
	// StoreUnavailableErr wraps infrastructure failures of the store. It is
	// surfaced to the caller, never retried here.
	StoreUnavailableErr = errors.New("user store unavailable")
)

// Repo is the minimal user-store contract the session flow consumes.
type Repo interface {
	// GetByIdentifier looks a user up by exact email or phone match.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	// GetByID looks a user up by its stable numeric ID.
	GetByID(ctx context.Context, id int64) (*User, error)

	// SetLastLogin stamps the user's last successful login time.
	SetLastLogin(ctx context.Context, id int64, at time.Time) error
}
