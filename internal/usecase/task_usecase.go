package usecase

import (
	"context"

	"tasklist/internal/domain/entity"
)

// CreateTaskInput defines the data required to create a task item.
type CreateTaskInput struct {
	Title   string
	Content string
}

// UpdateTaskInput replaces the title and content of an existing task item.
type UpdateTaskInput struct {
	TaskID  uint64
	Title   string
	Content string
}

// TaskUsecase defines task operations performed on behalf of an authenticated caller.
// Reads and writes of a single task report a missing task before a foreign one.
type TaskUsecase interface {
	CreateTask(ctx context.Context, caller *entity.Identity, input *CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context, caller *entity.Identity, username string) ([]*entity.Task, error)
	GetTask(ctx context.Context, caller *entity.Identity, taskID uint64) (*entity.Task, error)
	UpdateTask(ctx context.Context, caller *entity.Identity, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, caller *entity.Identity, taskID uint64) error
}
