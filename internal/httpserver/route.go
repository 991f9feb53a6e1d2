package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/middleware/auth"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

const Version = "1.0.0"

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	TaskHandler *TaskHTTP
	Verifier    auth.Verifier
	// Ready reports backend health for /health/ready. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", info)
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	e.POST("/token", d.AuthHandler.Token)

	// Guard routes one by one so unsupported methods on known paths still get 405.
	requireAuth := auth.RequireAuth(d.Verifier)

	users := e.Group("/users")
	users.POST("", d.UserHandler.CreateUser, requireAuth)
	users.GET("", d.UserHandler.ListUsers, requireAuth)
	users.GET("/:id", d.UserHandler.GetUser, requireAuth)
	users.DELETE("/:id", d.UserHandler.DeleteUser, requireAuth)

	tasks := e.Group("/tasks")
	tasks.POST("", d.TaskHandler.CreateTask, requireAuth)
	tasks.GET("", d.TaskHandler.ListTasks, requireAuth)
	tasks.GET("/search", d.TaskHandler.SearchTasks, requireAuth)
	tasks.GET("/:id", d.TaskHandler.GetTask, requireAuth)
	tasks.PUT("/:id", d.TaskHandler.UpdateTask, requireAuth)
	tasks.PATCH("/:id/complete", d.TaskHandler.CompleteTask, requireAuth)
	tasks.DELETE("/:id", d.TaskHandler.DeleteTask, requireAuth)
}

func info(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.InfoResponse{
		Message: "Tasks Demo API",
		Version: Version,
		Status:  "running",
	})
}

func (d *Deps) ready(c echo.Context) error {
	if d.Ready == nil {
		return c.NoContent(http.StatusOK)
	}
	if err := d.Ready(c.Request().Context()); err != nil {
		return fail(http.StatusServiceUnavailable, transport.KindUnavailable, "not ready")
	}
	return c.NoContent(http.StatusOK)
}
