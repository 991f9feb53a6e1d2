// Package service validates input and applies user and task operations to the stores.
package service

import (
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/Skotchmaster/tasks_api/internal/transport"
	"github.com/Skotchmaster/tasks_api/internal/util"
)

var ErrValidation = errors.New("validation error")

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func lengthBetween(field, v string, lo, hi int) error {
	n := utf8.RuneCountInString(v)
	if lo == 1 && n == 0 {
		return invalid(field, "is required")
	}
	if n < lo {
		return invalid(field, "must be at least %d characters", lo)
	}
	if hi > 0 && n > hi {
		return invalid(field, "must be at most %d characters", hi)
	}
	return nil
}

func ValidateUser(req transport.CreateUserRequest) error {
	if err := lengthBetween("username", req.Username, 3, 50); err != nil {
		return err
	}
	if req.Email == "" {
		return invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return invalid("email", "is not a valid email address")
	}
	return lengthBetween("password", req.Password, 8, 0)
}

func ValidateTask(req transport.TaskRequest) error {
	return lengthBetween("title", req.Title, 1, 200)
}

func ValidateWindow(offset, limit int) error {
	if offset < 0 {
		return invalid("offset", "must be greater than or equal to 0")
	}
	if limit < 1 || limit > util.MaxLimit {
		return invalid("limit", "must be between 1 and %d", util.MaxLimit)
	}
	return nil
}
