package service

import (
	"context"
	"strings"
	"time"

	"github.com/Skotchmaster/tasks_api/internal/events"
	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/models"
	"github.com/Skotchmaster/tasks_api/internal/repo"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

// TaskIndex is implemented by search.TaskIndex.
type TaskIndex interface {
	Put(ctx context.Context, task models.Task) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Task, error)
}

type TaskService struct {
	Repo   repo.TaskRepo
	Events events.Publisher
	// Index is optional; without it Search falls back to the store.
	Index TaskIndex
}

type TaskListQuery struct {
	Completed *bool
	Offset    int
	Limit     int
}

func (s *TaskService) Create(ctx context.Context, actor string, req transport.TaskRequest) (*models.Task, error) {
	if err := ValidateTask(req); err != nil {
		return nil, err
	}

	t := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, events.TaskCreated, actor, t)
	return t, nil
}

func (s *TaskService) List(ctx context.Context, q TaskListQuery) ([]models.Task, error) {
	if err := ValidateWindow(q.Offset, q.Limit); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, repo.TaskFilter{
		ListOptions: repo.ListOptions{Offset: q.Offset, Limit: q.Limit},
		Completed:   q.Completed,
	})
}

func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.Repo.Get(ctx, id)
}

// Update replaces title and description; completion is left as is.
func (s *TaskService) Update(ctx context.Context, actor string, id int64, req transport.TaskRequest) (*models.Task, error) {
	if err := ValidateTask(req); err != nil {
		return nil, err
	}

	t, err := s.Repo.Update(ctx, id, func(t *models.Task) {
		t.Title = req.Title
		t.Description = req.Description
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, events.TaskUpdated, actor, t)
	return t, nil
}

func (s *TaskService) Complete(ctx context.Context, actor string, id int64) (*models.Task, error) {
	t, err := s.Repo.Update(ctx, id, func(t *models.Task) {
		t.Completed = true
	})
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, events.TaskCompleted, actor, t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "task.delete", "id", id)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			l.Errorw("search_index_failed", "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicTasks, events.New(events.TaskDeleted, id, actor, nil))
	l.Infow("task_deleted")
	return nil
}

func (s *TaskService) Search(ctx context.Context, query string, offset, limit int) ([]models.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q", "is required")
	}
	if err := ValidateWindow(offset, limit); err != nil {
		return nil, err
	}

	if s.Index != nil {
		_, tasks, err := s.Index.Search(ctx, query, offset, limit)
		if err == nil {
			return tasks, nil
		}
		logging.FromContext(ctx).Warnw("search_index_unavailable", "svc", "task.search", "error", err)
	}

	return s.Repo.List(ctx, repo.TaskFilter{
		ListOptions: repo.ListOptions{Offset: offset, Limit: limit},
		Query:       query,
	})
}

func (s *TaskService) afterWrite(ctx context.Context, typ, actor string, t *models.Task) {
	l := logging.FromContext(ctx).With("svc", "task", "event", typ, "id", t.ID)
	if s.Index != nil {
		if err := s.Index.Put(ctx, *t); err != nil {
			l.Errorw("search_index_failed", "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicTasks, events.New(typ, t.ID, actor, map[string]any{
		"title":     t.Title,
		"completed": t.Completed,
	}))
	l.Infow(typ)
}
