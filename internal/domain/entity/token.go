package entity

import "time"

// TokenTypeBearer is the token type reported to clients.
const TokenTypeBearer = "bearer"

// Token is a signed, time-limited bearer token. The server keeps no token state;
// the value only lives with the client that holds it.
type Token struct {
	Value     string    // Compact serialized form handed to the client.
	Subject   string    // Username the token was issued for.
	IssuedAt  time.Time // Time of issuance.
	ExpiresAt time.Time // Absolute expiry. The token is rejected once now >= ExpiresAt.
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
