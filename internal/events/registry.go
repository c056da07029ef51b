package events

import (
	"encoding/json"
	"fmt"
)

// EventFactory creates a new zero-value event of a specific type.
type EventFactory func() Event

// Registry maps event types to factories so persisted payloads can be
// decoded back into concrete events.
type Registry struct {
	factories map[string]EventFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]EventFactory)}
}

// Register adds an event type to the registry.
func (r *Registry) Register(eventType string, factory EventFactory) {
	r.factories[eventType] = factory
}

// Known reports whether eventType has a registered factory.
func (r *Registry) Known(eventType string) bool {
	_, ok := r.factories[eventType]
	return ok
}

// Unmarshal decodes a persisted event into its concrete type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}

	event := factory()
	if err := json.Unmarshal([]byte(raw.Payload), event); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", raw.EventType, err)
	}
	return event, nil
}

// DefaultRegistry returns a registry with every catalog event registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(EventItemStaged, func() Event { return &ItemStaged{} })
	r.Register(EventItemStatusChanged, func() Event { return &ItemStatusChanged{} })
	r.Register(EventItemRenamed, func() Event { return &ItemRenamed{} })
	r.Register(EventItemRemoved, func() Event { return &ItemRemoved{} })
	r.Register(EventItemBlocked, func() Event { return &ItemBlocked{} })

	r.Register(EventLibraryAddRequested, func() Event { return &LibraryRequest{} })
	r.Register(EventLibraryRemoveRequested, func() Event { return &LibraryRequest{} })

	r.Register(EventBatchCompleted, func() Event { return &BatchCompleted{} })
	r.Register(EventScanCompleted, func() Event { return &ScanCompleted{} })

	return r
}
