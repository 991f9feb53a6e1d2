// Package events publishes domain events about users and tasks.
package events

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"
)

const (
	TopicUsers = "user_events"
	TopicTasks = "task_events"
)

const (
	UserCreated   = "user_created"
	UserDeleted   = "user_deleted"
	TaskCreated   = "task_created"
	TaskUpdated   = "task_updated"
	TaskCompleted = "task_completed"
	TaskDeleted   = "task_deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ResourceID int64     `json:"resource_id"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ string, resourceID int64, actor string, data any) Event {
	return Event{
		ID:         ksuid.New().String(),
		Type:       typ,
		ResourceID: resourceID,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }
func (Nop) Close() error                                         { return nil }
