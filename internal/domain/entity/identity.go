// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Identity is a registered account. The username is unique across all identities and the
// password is only ever stored as a self-describing digest.
type Identity struct {
	ID           uint64    // Assigned by the credential store on registration; immutable afterwards.
	Username     string    // Unique, non-empty login name.
	PasswordHash string    // Salted one-way digest produced by the password hasher.
	CreatedAt    time.Time // Timestamp of registration.
}

// Credential is a username/password pair presented for a single authentication call.
// It is never persisted.
type Credential struct {
	Username string
	Password string
}
