// Package events provides an in-process event bus with optional SQLite
// persistence for catalog activity.
package events

import "time"

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	EntityType() string // "movie", "tvshow", "blocked", "batch", "scan"
	EntityKey() string  // directory for content items, value for blocked entries
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	Key       string    `json:"entity_key"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityKey() string     { return e.Key }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, entityType, entityKey string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		Key:       entityKey,
		Timestamp: time.Now(),
	}
}
