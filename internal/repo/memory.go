package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/tasks_api/internal/models"
)

type MemoryUserRepo struct {
	t *table[models.User]
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{t: newTable(func(u *models.User, id int64) { u.ID = id })}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *models.User) error {
	return r.t.insert(u, func(existing *models.User) error {
		if existing.Username == u.Username {
			return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
		return nil
	})
}

func (r *MemoryUserRepo) List(_ context.Context, opts ListOptions) ([]models.User, error) {
	return r.t.list(nil, opts.Offset, opts.Limit), nil
}

func (r *MemoryUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.t.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id int64) error {
	if !r.t.remove(id) {
		return ErrNotFound
	}
	return nil
}

type MemoryTaskRepo struct {
	t *table[models.Task]
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{t: newTable(func(t *models.Task, id int64) { t.ID = id })}
}

func (r *MemoryTaskRepo) Create(_ context.Context, t *models.Task) error {
	return r.t.insert(t, nil)
}

func (r *MemoryTaskRepo) List(_ context.Context, f TaskFilter) ([]models.Task, error) {
	q := strings.ToLower(f.Query)
	match := func(t *models.Task) bool {
		if f.Completed != nil && t.Completed != *f.Completed {
			return false
		}
		if q == "" {
			return true
		}
		if strings.Contains(strings.ToLower(t.Title), q) {
			return true
		}
		return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
	}
	return r.t.list(match, f.Offset, f.Limit), nil
}

func (r *MemoryTaskRepo) Get(_ context.Context, id int64) (*models.Task, error) {
	t, ok := r.t.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTaskRepo) Update(_ context.Context, id int64, apply func(*models.Task)) (*models.Task, error) {
	t, ok := r.t.update(id, apply)
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryTaskRepo) Delete(_ context.Context, id int64) error {
	if !r.t.remove(id) {
		return ErrNotFound
	}
	return nil
}
