package entity

import "time"

// Task is a to-do item owned by exactly one identity.
type Task struct {
	ID        uint64    // The unique ID of the task.
	OwnerID   uint64    // ID of the identity that created the task.
	Title     string    // Short headline, at most 150 characters.
	Content   string    // Free text body, at most 250 characters.
	CreatedAt time.Time // Timestamp of creation.
	UpdatedAt time.Time // Timestamp of the last modification.
}

// OwnedBy reports whether the task belongs to the given identity id.
func (t *Task) OwnedBy(ownerID uint64) bool {
	return t != nil && t.OwnerID == ownerID
}
