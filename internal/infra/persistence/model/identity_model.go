package model

import "time"

// IdentityModel mirrors the 'identities' table. The unique index on username is what makes
// concurrent registrations of the same name resolve to exactly one row.
type IdentityModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(64);uniqueIndex:idx_identities_username;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
