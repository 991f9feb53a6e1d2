package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/tasks_api/internal/models"
)

type GormUserRepo struct {
	DB *gorm.DB
}

func (r *GormUserRepo) Create(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
		return tx.Create(u).Error
	})
}

func (r *GormUserRepo) List(ctx context.Context, opts ListOptions) ([]models.User, error) {
	items := []models.User{}
	q := r.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC").Offset(opts.Offset)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormUserRepo) Get(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormUserRepo) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormTaskRepo struct {
	DB *gorm.DB
}

func (r *GormTaskRepo) Create(ctx context.Context, t *models.Task) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormTaskRepo) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	items := []models.Task{}
	q := r.DB.WithContext(ctx).Model(&models.Task{})
	if f.Completed != nil {
		q = q.Where("completed = ?", *f.Completed)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", like, like)
	}
	q = q.Order("id ASC").Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormTaskRepo) Get(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	if err := r.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *GormTaskRepo) Update(ctx context.Context, id int64, apply func(*models.Task)) (*models.Task, error) {
	var t models.Task
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return notFound(err)
		}
		apply(&t)
		t.ID = id
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTaskRepo) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
