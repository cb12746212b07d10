package service

import "tasklist/internal/domain/entity"

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool {
	return d == Allow
}

// AuthorizationGuard decides whether an authenticated identity may act on a resource.
// Both checks are pure and total: they never fail and always return a decision.
type AuthorizationGuard interface {
	// AuthorizeOwner allows iff the identity owns the resource.
	AuthorizeOwner(identity *entity.Identity, resourceOwnerID uint64) Decision

	// AuthorizeSelf allows iff the identity is the requested user. Used for identity-scoped listings.
	AuthorizeSelf(identity *entity.Identity, requestedUsername string) Decision
}
