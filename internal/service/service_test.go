package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tasks_api/internal/events"
	"github.com/Skotchmaster/tasks_api/internal/models"
	"github.com/Skotchmaster/tasks_api/internal/repo"
	"github.com/Skotchmaster/tasks_api/internal/transport"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeIndex struct {
	docs      map[int64]models.Task
	searchErr error
	putErr    error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[int64]models.Task{}} }

func (f *fakeIndex) Put(_ context.Context, t models.Task) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.docs[t.ID] = t
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, _, _ int) (int64, []models.Task, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	var out []models.Task
	for _, t := range f.docs {
		if strings.Contains(t.Title, q) {
			out = append(out, t)
		}
	}
	return int64(len(out)), out, nil
}

func strPtr(s string) *string { return &s }

func validUser(name string) transport.CreateUserRequest {
	return transport.CreateUserRequest{Username: name, Email: name + "@example.com", Password: "password123"}
}

func TestValidateUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   transport.CreateUserRequest
		field string
	}{
		{name: "short username", req: transport.CreateUserRequest{Username: "ab", Email: "ab@example.com", Password: "password123"}, field: "username"},
		{name: "long username", req: transport.CreateUserRequest{Username: strings.Repeat("a", 51), Email: "a@example.com", Password: "password123"}, field: "username"},
		{name: "missing email", req: transport.CreateUserRequest{Username: "alice", Password: "password123"}, field: "email"},
		{name: "bad email", req: transport.CreateUserRequest{Username: "alice", Email: "not-an-email", Password: "password123"}, field: "email"},
		{name: "display name email", req: transport.CreateUserRequest{Username: "alice", Email: "Alice <alice@example.com>", Password: "password123"}, field: "email"},
		{name: "short password", req: transport.CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "short"}, field: "password"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUser(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, ValidateUser(validUser("alice")))
}

func TestValidateTaskAndWindow(t *testing.T) {
	t.Parallel()

	err := ValidateTask(transport.TaskRequest{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "title: is required")
	assert.EqualError(t, ValidateTask(transport.TaskRequest{Title: strings.Repeat("x", 201)}), "title: must be at most 200 characters")
	assert.ErrorIs(t, ValidateTask(transport.TaskRequest{Title: strings.Repeat("x", 201)}), ErrValidation)
	assert.NoError(t, ValidateTask(transport.TaskRequest{Title: strings.Repeat("x", 200)}))

	assert.ErrorIs(t, ValidateWindow(-1, 10), ErrValidation)
	assert.ErrorIs(t, ValidateWindow(0, 0), ErrValidation)
	assert.ErrorIs(t, ValidateWindow(0, 101), ErrValidation)
	assert.NoError(t, ValidateWindow(0, 100))
}

func TestUserService_CreateConflictAndDelete(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	svc := &UserService{Repo: repo.NewMemoryUserRepo(), Events: pub}
	ctx := context.Background()

	u, err := svc.Create(ctx, "admin", validUser("alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, u.ID)
	assert.True(t, u.IsActive)
	assert.Equal(t, "password123", u.Password)

	_, err = svc.Create(ctx, "admin", validUser("alice"))
	assert.ErrorIs(t, err, repo.ErrConflict)

	_, err = svc.Create(ctx, "admin", validUser("al"))
	assert.ErrorIs(t, err, ErrValidation)

	users, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, svc.Delete(ctx, "admin", u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "admin", u.ID), repo.ErrNotFound)
	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.Equal(t, []string{events.UserCreated, events.UserDeleted}, pub.types())
	assert.Equal(t, "admin", pub.events[0].Actor)
	assert.Equal(t, []string{events.TopicUsers, events.TopicUsers}, pub.topics)
}

func TestUserService_PublishFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	svc := &UserService{Repo: repo.NewMemoryUserRepo(), Events: &recordingPublisher{err: errors.New("broker down")}}
	_, err := svc.Create(context.Background(), "admin", validUser("alice"))
	require.NoError(t, err)
}

func TestTaskService_Lifecycle(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	idx := newFakeIndex()
	svc := &TaskService{Repo: repo.NewMemoryTaskRepo(), Events: pub, Index: idx}
	ctx := context.Background()

	for _, title := range []string{"t1", "t2", "t3"} {
		_, err := svc.Create(ctx, "admin", transport.TaskRequest{Title: title, Description: strPtr(title + " desc")})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Delete(ctx, "admin", 2))
	t4, err := svc.Create(ctx, "admin", transport.TaskRequest{Title: "t4"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, t4.ID)
	assert.Nil(t, t4.Description)
	assert.False(t, t4.Completed)

	done, err := svc.Complete(ctx, "bob", 1)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "t1", done.Title)
	require.NotNil(t, done.Description)
	assert.Equal(t, "t1 desc", *done.Description)

	updated, err := svc.Update(ctx, "bob", 1, transport.TaskRequest{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Nil(t, updated.Description)
	assert.True(t, updated.Completed)

	_, err = svc.Update(ctx, "bob", 1, transport.TaskRequest{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Complete(ctx, "bob", 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "bob", 2), repo.ErrNotFound)

	completed := true
	list, err := svc.List(ctx, TaskListQuery{Completed: &completed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, list[0].ID)

	assert.Equal(t, "renamed", idx.docs[1].Title)
	_, indexed := idx.docs[2]
	assert.False(t, indexed)

	assert.Equal(t, []string{
		events.TaskCreated, events.TaskCreated, events.TaskCreated,
		events.TaskDeleted, events.TaskCreated, events.TaskCompleted, events.TaskUpdated,
	}, pub.types())
}

func TestTaskService_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("uses index", func(t *testing.T) {
		idx := newFakeIndex()
		svc := &TaskService{Repo: repo.NewMemoryTaskRepo(), Index: idx}
		_, err := svc.Create(ctx, "admin", transport.TaskRequest{Title: "buy milk"})
		require.NoError(t, err)

		got, err := svc.Search(ctx, "milk", 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "buy milk", got[0].Title)
	})

	t.Run("falls back to store", func(t *testing.T) {
		idx := newFakeIndex()
		idx.searchErr = errors.New("es down")
		svc := &TaskService{Repo: repo.NewMemoryTaskRepo(), Index: idx}
		_, err := svc.Create(ctx, "admin", transport.TaskRequest{Title: "Buy Milk"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, "admin", transport.TaskRequest{Title: "walk dog"})
		require.NoError(t, err)

		got, err := svc.Search(ctx, "milk", 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.EqualValues(t, 1, got[0].ID)
	})

	t.Run("requires query", func(t *testing.T) {
		svc := &TaskService{Repo: repo.NewMemoryTaskRepo()}
		_, err := svc.Search(ctx, "  ", 0, 10)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
