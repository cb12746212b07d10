// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"
	"tasklist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and compared against when the username is unknown, so both
// failure paths pay for one bcrypt comparison.
const dummyPassword = "tasklist-timing-equalizer"

// authenticator implements usecase.Authenticator.
type authenticator struct {
	identityRepo repository.IdentityRepository
	hasher       service.PasswordHasher
	logger       *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// AuthenticatorParams holds dependencies for the authenticator, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Hasher       service.PasswordHasher
	Logger       *slog.Logger
}

// NewAuthenticator is the constructor for authenticator.
func NewAuthenticator(params AuthenticatorParams) usecase.Authenticator {
	return &authenticator{
		identityRepo: params.IdentityRepo,
		hasher:       params.Hasher,
		logger:       params.Logger,
	}
}

func (a *authenticator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

// Authenticate checks the password of the named identity. The error for an unknown username is
// indistinguishable from the error for a wrong password.
func (a *authenticator) Authenticate(ctx context.Context, username, password string) (*entity.Identity, error) {
	identity, err := a.identityRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, errors.Wrap(err, "failed to find identity")
		}

		a.hasher.Check(password, a.dummy(ctx))
		a.log(ctx).Info("Authentication failed", slog.String("reason", "unknown_username"))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !a.hasher.Check(password, identity.PasswordHash) {
		a.log(ctx).Info("Authentication failed",
			slog.String("reason", "password_mismatch"),
			slog.Uint64("identity_id", identity.ID),
		)

		return nil, domainerrors.ErrInvalidCredentials
	}

	return identity, nil
}

func (a *authenticator) dummy(ctx context.Context) string {
	a.dummyOnce.Do(func() {
		digest, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.log(ctx).Warn("Failed to prepare dummy digest", slog.Any("error", err))

			return
		}
		a.dummyDigest = digest
	})

	return a.dummyDigest
}
