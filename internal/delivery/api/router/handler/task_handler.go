package handler

import (
	"net/http"
	"time"

	"tasklist/internal/delivery/api/middleware"
	"tasklist/internal/delivery/api/response"
	"tasklist/internal/domain/entity"
	"tasklist/internal/usecase"

	"github.com/labstack/echo/v4"
)

// TaskHandler serves the todo endpoints. Every route behind it requires authentication.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
}

// NewTaskHandler is the constructor for TaskHandler.
func NewTaskHandler(taskUC usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{taskUC: taskUC}
}

// TaskRequest is the body of task create and update calls.
type TaskRequest struct {
	Title   string `json:"title" validate:"required,max=150"`
	Content string `json:"content" validate:"max=250"`
}

// TaskResponse is the public representation of a task.
type TaskResponse struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTaskResponse(task *entity.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		OwnerID:   task.OwnerID,
		Title:     task.Title,
		Content:   task.Content,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// Create handles POST /todo.
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), caller, &usecase.CreateTaskInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return response.Created(c, toTaskResponse(task))
}

// List handles GET /todo/:username.
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), caller, c.Param("username"))
	if err != nil {
		return err
	}

	items := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, toTaskResponse(task))
	}

	return response.Success(c, http.StatusOK, items)
}

// Get handles GET /todo/item/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /todo/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), caller, &usecase.UpdateTaskInput{
		TaskID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /todo/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
