package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	loggingmw "github.com/Skotchmaster/tasks_api/internal/middleware/logging"
)

// NewEcho builds the router with the shared middleware chain and error shape.
func NewEcho(logger *zap.SugaredLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(e)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())
	return e
}
