// Package auth guards routes with bearer tokens and exposes the principal.
package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/tokens"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

const principalKey = "principal"

type Verifier interface {
	Verify(token string) (string, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token subject as the request principal.
func RequireAuth(v Verifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  principalKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return v.Verify(auth)
		},
		SuccessHandler: func(c echo.Context) {
			username, _ := Principal(c)
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("principal", username)
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth")
			msg := "not authenticated"
			var perr *echojwt.TokenParsingError
			switch {
			case errors.As(err, &perr) && errors.Is(err, tokens.ErrTokenExpired):
				msg = "token has expired"
			case errors.As(err, &perr):
				msg = "invalid token"
			}
			l.Warnw("auth_failed", "status", http.StatusUnauthorized, "reason", msg, "error", err)
			return Unauthenticated(c, msg)
		},
	})
}

// Unauthenticated builds the 401 response shared by the middleware and token issuance.
func Unauthenticated(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, transport.ErrorResponse{
		Error:   transport.KindUnauthenticated,
		Message: msg,
	})
}

func Principal(c echo.Context) (string, bool) {
	username, ok := c.Get(principalKey).(string)
	return username, ok && username != ""
}
