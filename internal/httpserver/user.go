package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/service"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warnw("user_create_failed", "status", http.StatusUnprocessableEntity, "reason", "invalid body", "error", err)
		return invalid("invalid body")
	}

	u, err := h.Svc.Create(ctx, actor(c), req)
	if err != nil {
		return serviceError(l, "user_create_failed", "user", err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	offset, limit, err := parseWindow(c)
	if err != nil {
		l.Warnw("user_list_failed", "status", http.StatusUnprocessableEntity, "reason", "bad query", "error", err)
		return err
	}

	users, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		return serviceError(l, "user_list_failed", "user", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("user_get_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	u, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(l, "user_get_failed", "user", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("user_delete_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	if err := h.Svc.Delete(ctx, actor(c), id); err != nil {
		return serviceError(l, "user_delete_failed", "user", err)
	}
	return c.NoContent(http.StatusNoContent)
}
