// Package auth orchestrates the session flow of the shareholder portal:
// login, logout, current-user lookup, magic-link issuance and local-device
// login. Durable state lives entirely in the user store and the audit log;
// the service itself keeps no mutable state across calls.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/semdex/auth-service/audit"
	"github.com/semdex/auth-service/devices"
	"github.com/semdex/auth-service/directory"
	"github.com/semdex/auth-service/token"
	"github.com/semdex/auth-service/users"
)

// Method identifies how a login attempt was made. It is descriptive only:
// it is recorded in the audit trail and never changes validation.
type Method string

const (
	MethodEmail     Method = "email"
	MethodPhone     Method = "phone"
	MethodMagicLink Method = "magic-link"
	MethodLocal     Method = "local"
)

const defaultMagicLinkScheme = "semdex"

// Repos holds all repository dependencies for the SessionService.
type Repos struct {
	Users   users.Repo   // Persistent shareholder records
	Audit   audit.Repo   // Append-only security event log
	Devices devices.Repo // Local device-binding lookup
}

// SessionService implements the session flow over the credential directory,
// the stores and the token service.
type SessionService struct {
	repos           Repos
	directory       *directory.Directory
	tokens          *token.Service
	magicLinkScheme string
	nowTime         func() time.Time // nowTime function (injectable for testing)
}

// SessionServiceOption defines a function type to modify the SessionService instance.
type SessionServiceOption func(*SessionService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionServiceOption {
	return func(ss *SessionService) {
		ss.nowTime = nowFunc
	}
}

// WithMagicLinkScheme overrides the URI scheme used for magic links.
func WithMagicLinkScheme(scheme string) SessionServiceOption {
	return func(ss *SessionService) {
		if scheme != "" {
			ss.magicLinkScheme = scheme
		}
	}
}

// NewSessionService initializes a SessionService with required dependencies.
// Optional configuration can be provided via options (e.g., WithNowTime for
// testing).
func NewSessionService(
	repos Repos,
	dir *directory.Directory,
	tokens *token.Service,
	options ...SessionServiceOption,
) (*SessionService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewSessionService] Users repo is required")
	}
	if repos.Audit == nil {
		return nil, errors.New("[NewSessionService] Audit repo is required")
	}
	if repos.Devices == nil {
		return nil, errors.New("[NewSessionService] Devices repo is required")
	}
	if dir == nil {
		return nil, errors.New("[NewSessionService] credential directory is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewSessionService] token service is required")
	}

	sessionService := &SessionService{
		repos:           repos,
		directory:       dir,
		tokens:          tokens,
		magicLinkScheme: defaultMagicLinkScheme,
		nowTime:         time.Now,
	}

	for _, opt := range options {
		opt(sessionService)
	}

	return sessionService, nil
}

// LoginRequest carries one login attempt.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Method     Method `json:"method"`
	DeviceInfo string `json:"deviceInfo,omitempty"`
}

// UserSummary is the only projection of a User exposed to callers on a
// successful login.
type UserSummary struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	SharesOwned int64  `json:"sharesOwned"`
}

// LoginResult is the terminal success of a login attempt.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

func summarize(user *users.User) UserSummary {
	return UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		SharesOwned: user.SharesOwned,
	}
}

// Login authenticates an identifier against the credential directory and the
// user store, records the event and issues a session token. An identifier
// that is not allow-listed or has no user record rejects with
// AuthenticationFailedErr.
func (ss *SessionService) Login(ctx context.Context, req LoginRequest, ipAddress string) (*LoginResult, error) {
	if !ss.directory.IsAuthorized(req.Identifier) {
		return nil, AuthenticationFailedErr
	}

	// The allow-list is a coarse gate; the store lookup is the authoritative
	// source of the numeric user ID and profile fields. Both must agree.
	user, err := ss.repos.Users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if stderrors.Is(err, users.NotFoundErr) {
			return nil, AuthenticationFailedErr
		}
		return nil, errors.Wrap(err, "[SessionService.Login] GetByIdentifier")
	}

	// Best effort: a failed lastLogin update must not block the login.
	if err := ss.repos.Users.SetLastLogin(ctx, user.ID, ss.nowTime()); err != nil {
		log.Warn().Err(err).Int64("userId", user.ID).Msg("last login update failed")
	}

	return ss.finishLogin(ctx, "SessionService.Login", user, req.Method, req.DeviceInfo, ipAddress)
}

// finishLogin records the LOGIN entry and issues the token. The audit entry
// is written before the token exists so an authentication can never hand out
// a token without a corresponding LOGIN record. op names the calling flow in
// wrapped errors.
func (ss *SessionService) finishLogin(ctx context.Context, op string, user *users.User, method Method, deviceInfo, ipAddress string) (*LoginResult, error) {
	entry := &audit.Entry{
		UserID:    user.ID,
		Action:    audit.ActionLogin,
		Module:    audit.ModuleAuth,
		Details:   fmt.Sprintf("User logged in via %s", method),
		IPAddress: ipAddress,
		UserAgent: deviceInfo,
	}
	if err := ss.repos.Audit.Record(ctx, entry); err != nil {
		return nil, errors.Wrapf(err, "[%s] audit record", op)
	}

	signedToken, err := ss.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrapf(err, "[%s] issue token", op)
	}

	return &LoginResult{Token: signedToken, User: summarize(user)}, nil
}

// Logout appends a LOGOUT audit entry. It never fails the caller: tokens are
// stateless, so logout is audit-only, and an audit write failure here is
// logged rather than surfaced. Accepted behavior, not an oversight.
func (ss *SessionService) Logout(ctx context.Context, userID int64, ipAddress string) {
	entry := &audit.Entry{
		UserID:    userID,
		Action:    audit.ActionLogout,
		Module:    audit.ModuleAuth,
		Details:   "User logged out",
		IPAddress: ipAddress,
	}
	if err := ss.repos.Audit.Record(ctx, entry); err != nil {
		log.Error().Err(err).Int64("userId", userID).Msg("logout audit record failed")
	}
}

// CurrentUser resolves a bearer token to its user. Verification failure and
// a missing user both yield NoCurrentUserErr; callers must treat that as
// "not authenticated", not as a system fault. Store outages propagate.
func (ss *SessionService) CurrentUser(ctx context.Context, rawToken string) (*users.User, error) {
	claims, err := ss.tokens.Verify(rawToken)
	if err != nil {
		return nil, NoCurrentUserErr
	}

	user, err := ss.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, users.NotFoundErr) {
			return nil, NoCurrentUserErr
		}
		return nil, errors.Wrap(err, "[SessionService.CurrentUser] GetByID")
	}
	return user, nil
}

// MagicLink validates an email against the directory and the store, then
// wraps a fresh token in the application deep-link URI. Delivery of the link
// is out of scope here.
func (ss *SessionService) MagicLink(ctx context.Context, email string) (string, error) {
	if !ss.directory.IsAuthorized(email) {
		return "", AuthenticationFailedErr
	}

	user, err := ss.repos.Users.GetByIdentifier(ctx, email)
	if err != nil {
		if stderrors.Is(err, users.NotFoundErr) {
			return "", AuthenticationFailedErr
		}
		return "", errors.Wrap(err, "[SessionService.MagicLink] GetByIdentifier")
	}

	signedToken, err := ss.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", errors.Wrap(err, "[SessionService.MagicLink] issue token")
	}

	link := fmt.Sprintf("%s://auth/magic?token=%s", ss.magicLinkScheme, signedToken)
	log.Info().Str("email", email).Msg("magic link generated")
	return link, nil
}

// LocalDeviceLogin authenticates via a previously bound device. There is no
// credential-directory check: the binding itself is the gate, and the store
// lookup confirms the bound user still exists. UserNotFoundErr is
// distinguishable from DeviceNotRegisteredErr because it follows a
// successful binding check. The user record is read-only on this path: the
// flow audits and issues a token but never stamps lastLogin.
func (ss *SessionService) LocalDeviceLogin(ctx context.Context, deviceID, ipAddress string) (*LoginResult, error) {
	userID, err := ss.repos.Devices.Get(ctx, deviceID)
	if err != nil {
		if stderrors.Is(err, devices.NotRegisteredErr) {
			return nil, DeviceNotRegisteredErr
		}
		return nil, errors.Wrap(err, "[SessionService.LocalDeviceLogin] device lookup")
	}

	user, err := ss.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, users.NotFoundErr) {
			return nil, UserNotFoundErr
		}
		return nil, errors.Wrap(err, "[SessionService.LocalDeviceLogin] GetByID")
	}

	return ss.finishLogin(ctx, "SessionService.LocalDeviceLogin", user, MethodLocal, "", ipAddress)
}
