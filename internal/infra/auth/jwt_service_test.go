package auth

import (
	"strings"
	"testing"
	"time"

	"tasklist/config"
	domainerrors "tasklist/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Token = config.TokenConfig{
		Secret:     secret,
		Algorithm:  config.SigningAlgorithmHS256,
		Issuer:     "tasklist",
		DefaultTTL: 15 * time.Minute,
		LoginTTL:   30 * time.Minute,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")

	token, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, "alice", token.Subject)
	assert.Equal(t, time.Minute, token.ExpiresAt.Sub(token.IssuedAt))

	subject, err := svc.Verify(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWTService_IssueUsesDefaultTTL(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	token, err := svc.Issue("alice", 0)
	require.NoError(t, err)
	assert.True(t, now.Add(15*time.Minute).Equal(token.ExpiresAt))
	assert.Equal(t, 15*time.Minute, svc.DefaultTTL())
	assert.Equal(t, 30*time.Minute, svc.LoginTTL())
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)

	svc.now = fixedClock(issuedAt.Add(59 * time.Second))
	subject, err := svc.Verify(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	svc.now = fixedClock(issuedAt.Add(time.Minute))
	_, err = svc.Verify(token.Value)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired), "got %v", err)

	svc.now = fixedClock(issuedAt.Add(time.Hour))
	_, err = svc.Verify(token.Value)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired), "got %v", err)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")

	token, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token.Value, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, err = svc.Verify(tampered)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenBadSignature), "got %v", err)
}

func TestJWTService_TamperedPayload(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")

	aliceToken, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)
	bobToken, err := svc.Issue("bob", time.Minute)
	require.NoError(t, err)

	alice := strings.Split(aliceToken.Value, ".")
	bob := strings.Split(bobToken.Value, ".")
	forged := strings.Join([]string{alice[0], bob[1], alice[2]}, ".")

	_, err = svc.Verify(forged)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenBadSignature), "got %v", err)
}

func TestJWTService_OtherSecret(t *testing.T) {
	issuer := newTestJWTService(t, "secret-one")
	verifier := newTestJWTService(t, "secret-two")

	token, err := issuer.Issue("alice", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token.Value)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenBadSignature), "got %v", err)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenBadSignature), "got %v", err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenBadSignature), "got %v", err)
}

func TestJWTService_Malformed(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "!!!.???.###"} {
		_, err := svc.Verify(raw)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed), "input %q got %v", raw, err)
	}
}

func TestJWTService_MissingExpiry(t *testing.T) {
	svc := newTestJWTService(t, "test-secret")

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.Error(t, err)
}

func TestNewJWTService_RejectsBadConfig(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewJWTService(cfg)
	assert.ErrorContains(t, err, "jwt secret must be provided")

	cfg.Token.Secret = "secret"
	cfg.Token.Algorithm = "RS256"
	_, err = NewJWTService(cfg)
	assert.ErrorContains(t, err, "unsupported jwt signing algorithm")
}
