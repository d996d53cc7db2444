// Package token issues and verifies the signed, time-limited session tokens
// exchanged with portal clients. Tokens are stateless: validity is fully
// determined by the signature and the expiry claim, there is no server-side
// revocation list.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Platform marks every token as issued by this platform.
const Platform = "SEMDEX"

// DefaultLifetime is the token validity window applied when no explicit
// lifetime is configured.
const DefaultLifetime = 30 * 24 * time.Hour

// InvalidTokenErr is the single result for any verification failure. A
// malformed token, a bad signature and an elapsed expiry are deliberately
// indistinguishable to the caller.
var InvalidTokenErr = errors.New("invalid token")

// Claims are the verified identity claims carried by a session token.
type Claims struct {
	UserID int64
	Email  string
}

// Service signs and verifies session tokens with a process-wide HS256 secret.
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// NewService creates a token service. The signing secret is required; the
// lifetime falls back to DefaultLifetime when not positive.
func NewService(secret string, lifetime time.Duration) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("[token.NewService] signing secret is required")
	}
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Service{secret: []byte(secret), lifetime: lifetime}, nil
}

// Issue produces a signed token embedding the user's ID and email.
func (s *Service) Issue(userID int64, email string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"userId":   userID,
		"email":    email,
		"platform": Platform,
		"iat":      now.Unix(),
		"exp":      now.Add(s.lifetime).Unix(),
		"jti":      uuid.New().String(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Issue] failed to sign token")
	}
	return signed, nil
}

// Verify checks the signature and expiry of a raw token and returns its
// claims. Every failure collapses to InvalidTokenErr.
func (s *Service) Verify(rawToken string) (*Claims, error) {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(NowTimeFunc), jwtlib.WithExpirationRequired())

	if err != nil || !parsed.Valid {
		return nil, InvalidTokenErr
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, InvalidTokenErr
	}
	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, InvalidTokenErr
	}
	email, _ := claims["email"].(string)

	return &Claims{UserID: int64(userID), Email: email}, nil
}
