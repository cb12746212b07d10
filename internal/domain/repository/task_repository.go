package repository

import (
	"context"

	"tasklist/internal/domain/entity"
	"tasklist/internal/errors"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists task items. Every method is atomic for a single task; ownership is
// checked by the caller before Update and Delete are invoked.
type TaskRepository interface {
	// Create persists a new task and assigns its ID and timestamps.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID retrieves a task by its ID.
	FindByID(ctx context.Context, id uint64) (*entity.Task, error)

	// FindByOwner returns all tasks owned by the given identity, oldest first.
	FindByOwner(ctx context.Context, ownerID uint64) ([]*entity.Task, error)

	// Update overwrites title and content of an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes a task by its ID.
	Delete(ctx context.Context, id uint64) error
}
