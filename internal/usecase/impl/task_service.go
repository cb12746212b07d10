package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/domain/service"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo     repository.TaskRepository
	identityRepo repository.IdentityRepository
	guard        service.AuthorizationGuard
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo     repository.TaskRepository
	IdentityRepo repository.IdentityRepository
	Guard        service.AuthorizationGuard
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo:     params.TaskRepo,
		identityRepo: params.IdentityRepo,
		guard:        params.Guard,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTask stores a task owned by the caller.
func (srv *taskService) CreateTask(ctx context.Context, caller *entity.Identity, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if caller == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	task := &entity.Task{
		OwnerID: caller.ID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.publish(ctx, service.TaskActionCreated, task)

	return task, nil
}

// ListTasks returns the tasks of username. Callers may only list their own tasks.
func (srv *taskService) ListTasks(ctx context.Context, caller *entity.Identity, username string) ([]*entity.Task, error) {
	if !srv.guard.AuthorizeSelf(caller, username).Allowed() {
		return nil, domainerrors.ErrForbidden
	}

	owner, err := srv.identityRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find task owner")
	}

	tasks, err := srv.taskRepo.FindByOwner(ctx, owner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return tasks, nil
}

// GetTask returns a single task owned by the caller.
func (srv *taskService) GetTask(ctx context.Context, caller *entity.Identity, taskID uint64) (*entity.Task, error) {
	return srv.loadOwnedTask(ctx, caller, taskID)
}

// UpdateTask replaces title and content of a task owned by the caller.
func (srv *taskService) UpdateTask(ctx context.Context, caller *entity.Identity, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.loadOwnedTask(ctx, caller, input.TaskID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Content = input.Content
	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	srv.publish(ctx, service.TaskActionUpdated, task)

	return task, nil
}

// DeleteTask removes a task owned by the caller.
func (srv *taskService) DeleteTask(ctx context.Context, caller *entity.Identity, taskID uint64) error {
	task, err := srv.loadOwnedTask(ctx, caller, taskID)
	if err != nil {
		return err
	}

	if err := srv.taskRepo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.publish(ctx, service.TaskActionDeleted, task)

	return nil
}

// loadOwnedTask reports a missing task as not found before checking ownership.
func (srv *taskService) loadOwnedTask(ctx context.Context, caller *entity.Identity, taskID uint64) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	if !srv.guard.AuthorizeOwner(caller, task.OwnerID).Allowed() {
		srv.log(ctx).Warn("Task access denied",
			slog.Uint64("task_id", task.ID),
			slog.Uint64("owner_id", task.OwnerID),
		)

		return nil, domainerrors.ErrForbidden
	}

	return task, nil
}

// publish emits a task event. A failing publisher never fails the request.
func (srv *taskService) publish(ctx context.Context, action string, task *entity.Task) {
	event := &service.TaskEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Action:     action,
		TaskID:     task.ID,
		OwnerID:    task.OwnerID,
		Title:      task.Title,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishTaskEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish task event",
			slog.String("action", action),
			slog.Uint64("task_id", task.ID),
			slog.Any("error", err),
		)
	}
}
