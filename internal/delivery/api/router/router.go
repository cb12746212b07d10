// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasklist/internal/delivery/api/middleware"
	"tasklist/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	taskHandler    *handler.TaskHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		taskHandler:    params.TaskHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	// Public routes
	e.POST("/users", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)

	// Todo routes act on behalf of the token's subject
	todoGroup := e.Group("/todo")
	todoGroup.Use(r.authMiddleware.Authenticate)
	{
		todoGroup.POST("", r.taskHandler.Create)
		todoGroup.GET("/item/:id", r.taskHandler.Get)
		todoGroup.GET("/:username", r.taskHandler.List)
		todoGroup.PUT("/:id", r.taskHandler.Update)
		todoGroup.DELETE("/:id", r.taskHandler.Delete)
	}
}
