package httpserver

import (
	"errors"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/middleware/auth"
	"github.com/Skotchmaster/tasks_api/internal/tokens"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

type TokenIssuer interface {
	Issue(username, password string) (tokens.Token, error)
}

type AuthHTTP struct {
	Tokens TokenIssuer
}

// Token exchanges form credentials for a bearer token.
func (h *AuthHTTP) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.token")

	if !isForm(c.Request().Header.Get(echo.HeaderContentType)) {
		l.Warnw("token_failed", "status", http.StatusUnprocessableEntity, "reason", "not a form body",
			"content_type", c.Request().Header.Get(echo.HeaderContentType))
		return invalid("username and password must be sent as form fields")
	}

	var req transport.TokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warnw("token_failed", "status", http.StatusUnprocessableEntity, "reason", "invalid body", "error", err)
		return invalid("invalid form body")
	}
	if req.Username == "" || req.Password == "" {
		l.Warnw("token_failed", "status", http.StatusUnprocessableEntity, "reason", "missing credentials")
		return invalid("username and password are required")
	}
	if req.GrantType != "" && req.GrantType != "password" {
		l.Warnw("token_failed", "status", http.StatusUnprocessableEntity, "reason", "unsupported grant_type", "grant_type", req.GrantType)
		return invalid("grant_type must be password")
	}

	tok, err := h.Tokens.Issue(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, tokens.ErrInvalidCredentials) {
			l.Warnw("token_failed", "status", http.StatusUnauthorized, "reason", "bad credentials", "username", req.Username)
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return fail(http.StatusUnauthorized, transport.KindInvalidCredentials, "Incorrect username or password")
		}
		l.Errorw("token_failed", "status", http.StatusInternalServerError, "reason", "cannot sign token", "error", err)
		return fail(http.StatusInternalServerError, transport.KindInternal, "internal server error")
	}

	l.Infow("token_issued", "username", req.Username, "expires_at", tok.ExpiresAt)
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	})
}

func isForm(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == echo.MIMEApplicationForm || mt == echo.MIMEMultipartForm
}

func actor(c echo.Context) string {
	p, _ := auth.Principal(c)
	return p
}
