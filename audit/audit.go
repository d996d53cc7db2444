// Package audit records security-relevant events. Entries are append-only:
// they are written once per event and never mutated or deleted by this
// subsystem.
package audit

import (
	"context"
	"errors"
	"time"
)

// Action enumerates the recorded event kinds.
type Action string

const (
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
)

// ModuleAuth tags entries produced by the authentication subsystem.
const ModuleAuth = "AUTH"

// StoreUnavailableErr wraps infrastructure failures of the audit log.
var StoreUnavailableErr = errors.New("audit log unavailable")

// Entry is a single immutable audit record. CreatedAt is set at insert time
// by the store.
type Entry struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"userId"`
	Action    Action    `json:"action"`
	Module    string    `json:"module"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Repo appends audit entries. Record must complete or fail loudly before it
// returns; entries are never silently dropped.
type Repo interface {
	Record(ctx context.Context, entry *Entry) error
}
