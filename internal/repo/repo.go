// Package repo holds the user and task stores.
package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/tasks_api/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type ListOptions struct {
	Offset int
	Limit  int
}

type TaskFilter struct {
	ListOptions
	Completed *bool
	// Query matches a case-insensitive substring of title or description.
	Query string
}

type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	List(ctx context.Context, opts ListOptions) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *models.Task) error
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, id int64, apply func(*models.Task)) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}
