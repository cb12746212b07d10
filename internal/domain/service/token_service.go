package service

import (
	"time"

	"tasklist/internal/domain/entity"
)

// TokenService issues and verifies signed bearer tokens.
// Implementations hold no per-token state; a token stays valid until it expires.
type TokenService interface {
	// Issue creates a token for subject that expires ttl from now.
	// A non-positive ttl falls back to the configured default.
	Issue(subject string, ttl time.Duration) (*entity.Token, error)

	// Verify checks signature and expiry and returns the embedded subject.
	// Errors are domainerrors.ErrTokenMalformed, ErrTokenBadSignature or ErrTokenExpired.
	Verify(tokenString string) (string, error)

	// DefaultTTL returns the lifetime used when Issue is called without one.
	DefaultTTL() time.Duration

	// LoginTTL returns the lifetime of tokens minted by the login flow.
	LoginTTL() time.Duration
}
