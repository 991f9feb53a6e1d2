package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/tasks_api/internal/events"
	"github.com/Skotchmaster/tasks_api/internal/logging"
	"github.com/Skotchmaster/tasks_api/internal/models"
	"github.com/Skotchmaster/tasks_api/internal/repo"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

type UserService struct {
	Repo   repo.UserRepo
	Events events.Publisher
}

func (s *UserService) Create(ctx context.Context, actor string, req transport.CreateUserRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.create")
	if err := ValidateUser(req); err != nil {
		return nil, err
	}

	u := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, events.New(events.UserCreated, u.ID, actor, map[string]any{
		"username": u.Username,
	}))
	l.Infow("user_created", "id", u.ID, "username", u.Username)
	return u, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	if err := ValidateWindow(offset, limit); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, repo.ListOptions{Offset: offset, Limit: limit})
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicUsers, events.New(events.UserDeleted, id, actor, nil))
	logging.FromContext(ctx).Infow("user_deleted", "svc", "user.delete", "id", id)
	return nil
}

// publish logs delivery failures instead of failing the request.
func publish(ctx context.Context, p events.Publisher, topic string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, strconv.FormatInt(ev.ResourceID, 10), ev); err != nil {
		logging.FromContext(ctx).Errorw("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
