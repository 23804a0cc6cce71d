package entity

import "time"

type EventType string

const (
	EventTaskCreated   EventType = "task.created"
	EventTaskJoined    EventType = "task.joined"
	EventTaskCompleted EventType = "task.completed"
	EventTaskCancelled EventType = "task.cancelled"
	EventAlertRaised   EventType = "alert.raised"
	EventResourceMoved EventType = "resource.status_changed"
)

// TaskEvent is the message published to the event queue on every
// lifecycle change. Downstream consumers (audit worker, alerting) own
// delivery; the services only emit.
type TaskEvent struct {
	Type      EventType      `json:"type"`
	ActorID   int            `json:"actor_id"`
	EntityID  int            `json:"entity_id"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// TaskAudit is the persisted trace of a consumed TaskEvent.
type TaskAudit struct {
	ID        int       `json:"id"`
	ActorID   int       `json:"actor_id"`
	EventType EventType `json:"event_type"`
	EntityID  int       `json:"entity_id"`
	Payload   *string   `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
