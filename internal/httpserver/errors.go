package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/tasks_api/internal/repo"
	"github.com/Skotchmaster/tasks_api/internal/service"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

func fail(code int, kind, msg string) error {
	return echo.NewHTTPError(code, transport.ErrorResponse{Error: kind, Message: msg})
}

func invalid(msg string) error {
	return fail(http.StatusUnprocessableEntity, transport.KindValidation, msg)
}

// serviceError logs err under event and converts it to the matching response.
func serviceError(l *zap.SugaredLogger, event, resource string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warnw(event, "status", http.StatusUnprocessableEntity, "reason", "validation failed", "error", err)
		return invalid(err.Error())
	case errors.Is(err, repo.ErrNotFound):
		l.Warnw(event, "status", http.StatusNotFound, "reason", resource+" not found", "error", err)
		return fail(http.StatusNotFound, transport.KindNotFound, resource+" not found")
	case errors.Is(err, repo.ErrConflict):
		l.Warnw(event, "status", http.StatusConflict, "reason", resource+" already exists", "error", err)
		return fail(http.StatusConflict, transport.KindConflict, resource+" already exists")
	default:
		l.Errorw(event, "status", http.StatusInternalServerError, "reason", "unexpected error", "error", err)
		return fail(http.StatusInternalServerError, transport.KindInternal, "internal server error")
	}
}

// ErrorHandler renders every error as transport.ErrorResponse, including the
// plain echo errors raised by routing and binding.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := &echo.HTTPError{}
		if !errors.As(err, &he) {
			he = echo.NewHTTPError(http.StatusInternalServerError, transport.ErrorResponse{
				Error:   transport.KindInternal,
				Message: "internal server error",
			})
		}

		body, ok := he.Message.(transport.ErrorResponse)
		if !ok {
			body = transport.ErrorResponse{Error: kindFor(he.Code), Message: http.StatusText(he.Code)}
			if m, isStr := he.Message.(string); isStr && m != "" {
				body.Message = m
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, body)
		}
		if werr != nil {
			e.Logger.Error(werr)
		}
	}
}

func kindFor(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return transport.KindValidation
	case http.StatusUnauthorized:
		return transport.KindUnauthenticated
	case http.StatusNotFound:
		return transport.KindNotFound
	case http.StatusMethodNotAllowed:
		return transport.KindMethodNotAllowed
	case http.StatusConflict:
		return transport.KindConflict
	default:
		return transport.KindInternal
	}
}
