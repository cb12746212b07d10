// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"tasklist/internal/domain/entity"
	"tasklist/internal/errors"
)

// ErrIdentityNotFound is returned when no identity matches a lookup.
var ErrIdentityNotFound = errors.New("identity not found")

// IdentityRepository is the credential store. It exclusively owns identity records.
type IdentityRepository interface {
	// Create persists a new identity and assigns its ID.
	// It returns domainerrors.ErrDuplicateUsername when the username is already taken; uniqueness is
	// enforced by the storage itself so concurrent registrations cannot both succeed.
	Create(ctx context.Context, identity *entity.Identity) error

	// FindByUsername retrieves an identity by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Identity, error)

	// FindByID retrieves an identity by its ID.
	FindByID(ctx context.Context, id uint64) (*entity.Identity, error)
}
