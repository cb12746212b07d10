package service

import (
	"context"
	"time"
)

// Task event actions.
const (
	TaskActionCreated = "created"
	TaskActionUpdated = "updated"
	TaskActionDeleted = "deleted"
)

// TaskEvent describes a change to a task item.
type TaskEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	TaskID     uint64    `json:"task_id"`
	OwnerID    uint64    `json:"owner_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishTaskEvent publishes a task change event
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
