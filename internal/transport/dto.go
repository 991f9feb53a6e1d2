package transport

const (
	KindValidation         = "validation_error"
	KindUnauthenticated    = "unauthenticated"
	KindInvalidCredentials = "invalid_credentials"
	KindConflict           = "conflict"
	KindNotFound           = "not_found"
	KindMethodNotAllowed   = "method_not_allowed"
	KindInternal           = "internal_error"
	KindUnavailable        = "unavailable"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type TokenRequest struct {
	Username  string `form:"username"`
	Password  string `form:"password"`
	GrantType string `form:"grant_type"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest is the body of both task creation and full update.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
