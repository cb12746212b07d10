package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"
	"tasklist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	identityRepo  repository.IdentityRepository
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	authenticator usecase.Authenticator
	logger        *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	IdentityRepo  repository.IdentityRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Authenticator usecase.Authenticator
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		identityRepo:  params.IdentityRepo,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		authenticator: params.Authenticator,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register hashes the password and stores a new identity. A taken username yields
// ErrDuplicateUsername, also when two registrations race.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Identity, error) {
	if input.Username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username must not be empty")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	identity := &entity.Identity{
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := srv.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateUsername) {
			srv.log(ctx).Info("Registration rejected, username taken", slog.String("username", input.Username))

			return nil, err
		}

		return nil, errors.Wrap(err, "failed to create identity")
	}

	srv.log(ctx).Info("User registered",
		slog.Uint64("identity_id", identity.ID),
		slog.String("username", identity.Username),
	)

	return identity, nil
}

// Login authenticates the credentials and mints a bearer token with the login lifetime.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identity, err := srv.authenticator.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.Issue(identity.Username, srv.tokenService.LoginTTL())
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Uint64("identity_id", identity.ID))

	return &usecase.LoginOutput{
		AccessToken: token.Value,
		TokenType:   entity.TokenTypeBearer,
		ExpiresAt:   token.ExpiresAt,
		Identity:    identity,
	}, nil
}

// Identify verifies the token and loads the identity named by its subject.
func (srv *userService) Identify(ctx context.Context, token string) (*entity.Identity, error) {
	subject, err := srv.tokenService.Verify(token)
	if err != nil {
		return nil, err
	}

	identity, err := srv.identityRepo.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrUnauthorized.WithDetails("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return identity, nil
}
