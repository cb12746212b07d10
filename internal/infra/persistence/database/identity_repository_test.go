package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(newTestDB(t))

	alice := &entity.Identity{Username: "alice", PasswordHash: "$2a$04$digest"}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)
	assert.Equal(t, "$2a$04$digest", byName.PasswordHash)

	byID, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestIdentityRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(newTestDB(t))

	_, err := repo.FindByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))

	_, err = repo.FindByID(ctx, 42)
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
}

func TestIdentityRepository_UsernameIsCaseSensitiveLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.Identity{Username: "alice", PasswordHash: "h"}))

	_, err := repo.FindByUsername(ctx, "ALICE")
	assert.True(t, errors.Is(err, repository.ErrIdentityNotFound))
}

func TestIdentityRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &entity.Identity{Username: "alice", PasswordHash: "first"}))

	err := repo.Create(ctx, &entity.Identity{Username: "alice", PasswordHash: "second"})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateUsername), "got %v", err)

	stored, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "first", stored.PasswordHash)
}

func TestIdentityRepository_ConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(newTestDB(t))

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &entity.Identity{
				Username:     "alice",
				PasswordHash: fmt.Sprintf("hash-%d", i),
			})
		}()
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainerrors.ErrDuplicateUsername):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, duplicates)
}
