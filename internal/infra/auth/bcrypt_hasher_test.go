package auth

import (
	"strings"
	"testing"

	"tasklist/config"
	domainerrors "tasklist/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strictPolicy() *config.PasswordStrengthConfig {
	return &config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
		ForbiddenWords:   []string{"password", "tasklist"},
	}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, nil)

	hash, err := hasher.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, hasher.Check("pw1", hash))
	assert.False(t, hasher.Check("pw2", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, nil)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-password", first))
	assert.True(t, hasher.Check("same-password", second))
}

func TestBcryptHasher_CheckMalformedDigest(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, nil)

	assert.False(t, hasher.Check("pw1", ""))
	assert.False(t, hasher.Check("pw1", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Check("pw1", "$2a$04$short"))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost + 1}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestBcryptHasher_CostIsClamped(t *testing.T) {
	hasher := NewBcryptHasherWithCost(1, nil)

	hash, err := hasher.Hash("pw1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_ValidatePasswordStrength_WithoutPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, nil)

	assert.NoError(t, hasher.ValidatePasswordStrength("pw1"))

	err := hasher.ValidatePasswordStrength("")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	err = hasher.ValidatePasswordStrength(strings.Repeat("a", 73))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestBcryptHasher_ValidatePasswordStrength_WithPolicy(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, strictPolicy())

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "strong", password: "StrongPass123!", wantErr: nil},
		{name: "too short", password: "Aa1!", wantErr: domainerrors.ErrPasswordStrength},
		{name: "no lowercase", password: "STRONGPASS123!", wantErr: domainerrors.ErrPasswordStrength},
		{name: "no uppercase", password: "strongpass123!", wantErr: domainerrors.ErrPasswordStrength},
		{name: "no number", password: "StrongPassABC!", wantErr: domainerrors.ErrPasswordStrength},
		{name: "no special", password: "StrongPass1234", wantErr: domainerrors.ErrPasswordStrength},
		{name: "forbidden word", password: "MyPassword123!", wantErr: domainerrors.ErrPasswordForbiddenWords},
		{name: "forbidden word any case", password: "TaskList123!x", wantErr: domainerrors.ErrPasswordForbiddenWords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBcryptHasher_CharacterHelpers(t *testing.T) {
	hasher := &bcryptHasher{}

	assert.True(t, hasher.hasUppercase("abcD"))
	assert.False(t, hasher.hasUppercase("abcd"))
	assert.True(t, hasher.hasLowercase("ABCd"))
	assert.False(t, hasher.hasLowercase("ABCD"))
	assert.True(t, hasher.hasNumbers("abc1"))
	assert.False(t, hasher.hasNumbers("abcd"))
	assert.True(t, hasher.hasSpecialChars("abc$"))
	assert.False(t, hasher.hasSpecialChars("abc1"))
	assert.True(t, hasher.containsForbiddenWords("myADMINpass", []string{"admin"}))
	assert.False(t, hasher.containsForbiddenWords("mypass", []string{"", "admin"}))
}
