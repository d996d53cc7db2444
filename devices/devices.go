// Package devices exposes the device-binding lookup used by local-device
// login. The binding store is a local, untrusted key-value collaborator: it
// maps a device ID to a previously bound user ID and makes no trust
// decisions of its own.
package devices

import (
	"context"
	"errors"
)

var (
	// NotRegisteredErr is returned when no user is bound to the device.
	NotRegisteredErr = errors.New("device not registered")
	// StoreUnavailableErr wraps infrastructure failures of the binding store.
	StoreUnavailableErr = errors.New("device store unavailable")
)

// Repo is the device-binding contract consumed by the session flow.
type Repo interface {
	// Get returns the user ID bound to deviceID, or NotRegisteredErr.
	Get(ctx context.Context, deviceID string) (int64, error)

	// Bind associates deviceID with userID, replacing any prior binding.
	Bind(ctx context.Context, deviceID string, userID int64) error
}
