package auth

import (
	"tasklist/internal/domain/entity"
	"tasklist/internal/domain/service"
)

// ownershipGuard grants access when the caller is the owner of the resource.
// It is stateless and never touches storage.
type ownershipGuard struct{}

// NewOwnershipGuard is the constructor for ownershipGuard.
func NewOwnershipGuard() service.AuthorizationGuard {
	return ownershipGuard{}
}

// AuthorizeOwner allows the caller when their ID equals the resource owner's ID.
func (ownershipGuard) AuthorizeOwner(caller *entity.Identity, ownerID uint64) service.Decision {
	if caller == nil {
		return service.Deny
	}

	return service.Decision(caller.ID == ownerID)
}

// AuthorizeSelf allows the caller when the addressed username is their own.
func (ownershipGuard) AuthorizeSelf(caller *entity.Identity, username string) service.Decision {
	if caller == nil {
		return service.Deny
	}

	return service.Decision(caller.Username == username)
}
