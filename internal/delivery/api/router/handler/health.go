package handler

import (
	"context"
	"net/http"
	"time"

	"tasklist/internal/delivery/api/response"
	domainerrors "tasklist/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Check pings the database.
func (h *HealthHandler) Check(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to get sql.DB")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return response.Success(c, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
	}

	return response.Success(c, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
