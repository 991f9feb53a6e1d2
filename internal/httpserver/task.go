package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/service"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

type TaskHTTP struct {
	Svc *service.TaskService
}

func (h *TaskHTTP) CreateTask(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.create")

	var req transport.TaskRequest
	if err := c.Bind(&req); err != nil {
		l.Warnw("task_create_failed", "status", http.StatusUnprocessableEntity, "reason", "invalid body", "error", err)
		return invalid("invalid body")
	}

	t, err := h.Svc.Create(ctx, actor(c), req)
	if err != nil {
		return serviceError(l, "task_create_failed", "task", err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TaskHTTP) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.list")

	offset, limit, err := parseWindow(c)
	if err != nil {
		l.Warnw("task_list_failed", "status", http.StatusUnprocessableEntity, "reason", "bad query", "error", err)
		return err
	}
	completed, err := parseCompleted(c)
	if err != nil {
		l.Warnw("task_list_failed", "status", http.StatusUnprocessableEntity, "reason", "bad query", "error", err)
		return err
	}

	tasks, err := h.Svc.List(ctx, service.TaskListQuery{Completed: completed, Offset: offset, Limit: limit})
	if err != nil {
		return serviceError(l, "task_list_failed", "task", err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHTTP) SearchTasks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.search")

	offset, limit, err := parseWindow(c)
	if err != nil {
		l.Warnw("task_search_failed", "status", http.StatusUnprocessableEntity, "reason", "bad query", "error", err)
		return err
	}

	tasks, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return serviceError(l, "task_search_failed", "task", err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHTTP) GetTask(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.get")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("task_get_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	t, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(l, "task_get_failed", "task", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskHTTP) UpdateTask(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.update")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("task_update_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	var req transport.TaskRequest
	if err := c.Bind(&req); err != nil {
		l.Warnw("task_update_failed", "status", http.StatusUnprocessableEntity, "reason", "invalid body", "error", err)
		return invalid("invalid body")
	}

	t, err := h.Svc.Update(ctx, actor(c), id, req)
	if err != nil {
		return serviceError(l, "task_update_failed", "task", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskHTTP) CompleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.complete")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("task_complete_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	t, err := h.Svc.Complete(ctx, actor(c), id)
	if err != nil {
		return serviceError(l, "task_complete_failed", "task", err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskHTTP) DeleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "task.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warnw("task_delete_failed", "status", http.StatusUnprocessableEntity, "reason", "id is not an integer", "id", c.Param("id"))
		return err
	}

	if err := h.Svc.Delete(ctx, actor(c), id); err != nil {
		return serviceError(l, "task_delete_failed", "task", err)
	}
	return c.NoContent(http.StatusNoContent)
}
