package model

import "time"

// TaskModel mirrors the 'tasks' table. OwnerID references identities.id.
type TaskModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	OwnerID   uint64 `gorm:"not null;index:idx_tasks_owner_id"`
	Title     string `gorm:"type:varchar(150);not null"`
	Content   string `gorm:"type:varchar(250);not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner *IdentityModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
