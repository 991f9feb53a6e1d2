package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/util"
)

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, invalid("id must be an integer")
	}
	return id, nil
}

// parseWindow reads offset (or its alias skip) and limit. Range checks are
// left to the service.
func parseWindow(c echo.Context) (offset, limit int, err error) {
	raw := c.QueryParam("offset")
	if raw == "" {
		raw = c.QueryParam("skip")
	}
	offset, err = util.ParseIntDefault(raw, 0)
	if err != nil {
		return 0, 0, invalid("offset must be an integer")
	}
	limit, err = util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit)
	if err != nil {
		return 0, 0, invalid("limit must be an integer")
	}
	return offset, limit, nil
}

func parseCompleted(c echo.Context) (*bool, error) {
	raw := c.QueryParam("completed")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalid("completed must be a boolean")
	}
	return &v, nil
}
