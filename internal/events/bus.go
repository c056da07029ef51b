package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus fans catalog events out to in-process subscribers and, when an
// EventLog is attached, records them in the events table.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event // eventType -> channels
	allSubs     []chan Event
	log         *EventLog // may be nil
	logger      *slog.Logger
	closed      bool
}

// NewBus creates a new event bus. Pass a nil EventLog to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan Event),
		log:         log,
		logger:      logger.With("component", "events"),
	}
}

// Publish persists e (if a log is attached) and delivers it to every
// matching subscriber without blocking. A full subscriber drops the event.
// Persistence failures are logged and never returned: the catalog
// operation that produced the event has already committed.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return nil
	}

	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("persist event", "type", e.EventType(), "error", err)
		}
	}

	// Sends never block, so holding the read lock keeps Unsubscribe and
	// Close from closing a channel mid-delivery.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, ch := range b.subscribers[e.EventType()] {
		b.deliver(ch, e)
	}
	for _, ch := range b.allSubs {
		b.deliver(ch, e)
	}
	return nil
}

func (b *Bus) deliver(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
		b.logger.Warn("subscriber channel full, dropping event",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_key", e.EntityKey())
	}
}

// Subscribe returns a channel for events of a specific type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	return ch
}

// SubscribeAll returns a channel for all events.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.allSubs = append(b.allSubs, ch)
	return ch
}

// SubscribeEntity returns events for one catalog entry, e.g. a directory.
// The returned channel closes when the bus closes.
func (b *Bus) SubscribeEntity(entityType, entityKey string, bufferSize int) <-chan Event {
	allCh := b.SubscribeAll(bufferSize * 10)
	filtered := make(chan Event, bufferSize)

	go func() {
		defer close(filtered)
		for e := range allCh {
			if e.EntityType() != entityType || e.EntityKey() != entityKey {
				continue
			}
			select {
			case filtered <- e:
			default:
			}
		}
	}()

	return filtered
}

// Unsubscribe removes and closes a subscription channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscribers {
		for i, sub := range subs {
			if sub == ch {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				close(sub)
				return
			}
		}
	}
	for i, sub := range b.allSubs {
		if sub == ch {
			b.allSubs = append(b.allSubs[:i], b.allSubs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subscribers = nil
	for _, ch := range b.allSubs {
		close(ch)
	}
	b.allSubs = nil
	return nil
}
