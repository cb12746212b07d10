package database

import (
	"context"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/errors"
	"tasklist/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// identityRepository implements repository.IdentityRepository on top of RecordStore.
type identityRepository struct {
	store *RecordStore[model.IdentityModel]
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{
		store: NewRecordStore[model.IdentityModel](db),
	}
}

// Create inserts a new identity. The unique username index rejects the loser of a concurrent
// registration race with ErrDuplicateUsername.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identityM := fromIdentityDomain(identity)
	if err := repo.store.Insert(ctx, identityM); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return domainerrors.ErrDuplicateUsername
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	identity.ID = identityM.ID
	identity.CreatedAt = identityM.CreatedAt

	return nil
}

// FindByUsername retrieves an identity by its exact username.
func (repo *identityRepository) FindByUsername(ctx context.Context, username string) (*entity.Identity, error) {
	identityM, err := repo.store.FindOne(ctx, "username = ?", username)
	if err != nil {
		return nil, repo.mapFindError(err, "failed to find identity by username")
	}

	return toIdentityDomain(identityM), nil
}

// FindByID retrieves an identity by its ID.
func (repo *identityRepository) FindByID(ctx context.Context, id uint64) (*entity.Identity, error) {
	identityM, err := repo.store.FindOne(ctx, "id = ?", id)
	if err != nil {
		return nil, repo.mapFindError(err, "failed to find identity by id")
	}

	return toIdentityDomain(identityM), nil
}

func (repo *identityRepository) mapFindError(err error, details string) error {
	if errors.Is(err, ErrRecordNotFound) {
		return repository.ErrIdentityNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func toIdentityDomain(data *model.IdentityModel) *entity.Identity {
	if data == nil {
		return nil
	}

	return &entity.Identity{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}

func fromIdentityDomain(data *entity.Identity) *model.IdentityModel {
	if data == nil {
		return nil
	}

	return &model.IdentityModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}
}
