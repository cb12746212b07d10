// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"tasklist/config"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/service"
	"tasklist/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// All fields are set once by the constructor and never change, so the service is safe for
// concurrent use. Rotating the secret requires a restart and invalidates every outstanding token.
type jwtService struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
	loginTTL   time.Duration
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
// A missing secret or an algorithm other than HS256 is a startup error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	tokenCfg := cfg.Token
	if tokenCfg.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if tokenCfg.Algorithm != "" && tokenCfg.Algorithm != config.SigningAlgorithmHS256 {
		return nil, errors.Errorf("unsupported jwt signing algorithm: %s", tokenCfg.Algorithm)
	}

	defaultTTL := tokenCfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = config.DefaultTokenTTL
	}
	loginTTL := tokenCfg.LoginTTL
	if loginTTL <= 0 {
		loginTTL = config.DefaultLoginTTL
	}

	return &jwtService{
		secret:     []byte(tokenCfg.Secret),
		issuer:     tokenCfg.Issuer,
		defaultTTL: defaultTTL,
		loginTTL:   loginTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a token for subject that expires ttl from now.
func (s *jwtService) Issue(subject string, ttl time.Duration) (*entity.Token, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return &entity.Token{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Verify checks the signature and expiry of tokenString and returns its subject.
func (s *jwtService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", classifyTokenError(err)
	}

	if claims.Subject == "" {
		return "", errors.Wrap(domainerrors.ErrTokenMalformed, "token has no subject")
	}

	return claims.Subject, nil
}

// DefaultTTL returns the lifetime used when Issue is called without one.
func (s *jwtService) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// LoginTTL returns the lifetime of tokens minted by the login flow.
func (s *jwtService) LoginTTL() time.Duration {
	return s.loginTTL
}

// classifyTokenError maps jwt parser errors onto the token error taxonomy.
// Signature problems are checked before expiry because the parser verifies the signature first.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Wrap(domainerrors.ErrTokenBadSignature, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	}
}
