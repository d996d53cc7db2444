package users

import "time"

// User is a persistent shareholder record. Users are provisioned out-of-band;
// this subsystem only reads them and stamps LastLogin on successful logins.
type User struct {
	ID          int64      `json:"id"`                  // Unique, stable identifier
	Email       string     `json:"email"`               // User's email address
	Phone       string     `json:"phone,omitempty"`     // User's phone number
	FullName    string     `json:"fullName"`            // Display name
	LastLogin   *time.Time `json:"lastLogin,omitempty"` // Last successful login, nil before first login
	SharesOwned int64      `json:"sharesOwned"`         // Shares held on the platform
}
