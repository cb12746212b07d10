// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"tasklist/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// LoginOutput carries the bearer token minted by a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	Identity    *entity.Identity
}

// Authenticator verifies a username and password pair against the credential store.
type Authenticator interface {
	// Authenticate returns the matching identity. Unknown usernames and wrong passwords both
	// yield domainerrors.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*entity.Identity, error)
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Identity, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Identify resolves a bearer token to the identity it was issued for.
	Identify(ctx context.Context, token string) (*entity.Identity, error)
}
