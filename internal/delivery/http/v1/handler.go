package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/notebook-todo/internal/auth"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

type Handler interface {
	HandleAuthMiddleware(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	verifier auth.TokenVerifier
	tasks    services.TaskService
	now      func() time.Time
}

func New(
	logger zerolog.Logger,
	verifier auth.TokenVerifier,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		verifier: verifier,
		tasks:    taskService,
		now:      time.Now,
	}
}

// RegisterRoutes mounts the health check and the task routes. Every
// task route runs behind the auth middleware.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/health", h.HandleHealth)

	todos := router.Group("/api/todos", h.HandleAuthMiddleware)
	todos.GET("", h.HandleGetTasks)
	todos.POST("", h.HandleCreateTask)
	todos.PUT("/:id", h.HandleUpdateTask)
	todos.DELETE("/:id", h.HandleDeleteTask)
}
