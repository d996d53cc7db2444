package auth

import "errors"

var (
	// AuthenticationFailedErr covers both an unauthorized identifier and a
	// missing user record. The two cases are deliberately not distinguished
	// so callers cannot probe which identifiers exist.
	AuthenticationFailedErr = errors.New("invalid credentials, only authorized users can access SEMDEX")

	// NoCurrentUserErr means the presented token does not resolve to a user.
	// It signals "not authenticated", not a system fault.
	NoCurrentUserErr = errors.New("no current user")

	DeviceNotRegisteredErr = errors.New("device not registered")
	UserNotFoundErr        = errors.New("user not found")
)
