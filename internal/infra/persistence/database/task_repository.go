package database

import (
	"context"
	"time"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/errors"
	"tasklist/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// taskRepository implements repository.TaskRepository on top of RecordStore.
type taskRepository struct {
	store *RecordStore[model.TaskModel]
	now   func() time.Time
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{
		store: NewRecordStore[model.TaskModel](db),
		now:   time.Now,
	}
}

// Create persists a new task and copies the generated ID and timestamps back onto it.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	if err := repo.store.Insert(ctx, taskM); err != nil {
		if errors.Is(err, ErrMissingReference) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// FindByID retrieves a task by its ID.
func (repo *taskRepository) FindByID(ctx context.Context, id uint64) (*entity.Task, error) {
	taskM, err := repo.store.FindOne(ctx, "id = ?", id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find task by id")
	}

	return toTaskDomain(taskM), nil
}

// FindByOwner lists the owner's tasks by ascending ID, which is creation order.
func (repo *taskRepository) FindByOwner(ctx context.Context, ownerID uint64) ([]*entity.Task, error) {
	taskMs, err := repo.store.FindMany(ctx, "id ASC", "owner_id = ?", ownerID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list tasks by owner")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for _, taskM := range taskMs {
		tasks = append(tasks, toTaskDomain(taskM))
	}

	return tasks, nil
}

// Update overwrites title and content and refreshes UpdatedAt on the task.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	updatedAt := repo.now()
	err := repo.store.UpdateByID(ctx, task.ID, map[string]any{
		"title":      task.Title,
		"content":    task.Content,
		"updated_at": updatedAt,
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return repository.ErrTaskNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update task")
	}

	task.UpdatedAt = updatedAt

	return nil
}

// Delete removes a task by its ID.
func (repo *taskRepository) Delete(ctx context.Context, id uint64) error {
	if err := repo.store.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return repository.ErrTaskNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete task")
	}

	return nil
}

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
