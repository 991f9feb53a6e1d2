package loggingmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Skotchmaster/tasks_api/internal/logging"
)

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler echo.HandlerFunc
		status  int
		level   zapcore.Level
	}{
		{name: "ok", handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) }, status: http.StatusOK, level: zapcore.InfoLevel},
		{name: "client error", handler: func(c echo.Context) error { return echo.ErrNotFound }, status: http.StatusNotFound, level: zapcore.WarnLevel},
		{name: "server error", handler: func(c echo.Context) error { return echo.ErrInternalServerError }, status: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			e := echo.New()
			e.Use(RequestLogger(zap.New(core).Sugar()))
			e.GET("/things", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/things", nil)
			req.Header.Set(echo.HeaderXRequestID, "rid-1")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			entries := logs.FilterMessage("request completed").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.EqualValues(t, tt.status, fields["status"])
			assert.Equal(t, "rid-1", fields["request_id"])
			assert.Equal(t, "/things", fields["path"])
		})
	}
}

func TestRequestLogger_StoresLoggerInContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core).Sugar()))
	e.GET("/", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Infow("inside")
		return c.NoContent(http.StatusNoContent)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.FilterMessage("inside").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "GET", entries[0].ContextMap()["method"])
}
