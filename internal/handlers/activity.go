package handlers

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/vmunix/mediacat/internal/events"
)

// ActivityHandler writes catalog activity to the log and counts events by
// type. Library requests and scan summaries are logged at info, the rest
// at debug.
type ActivityHandler struct {
	*BaseHandler

	mu     sync.Mutex
	counts map[string]int
}

// NewActivityHandler creates an activity handler.
func NewActivityHandler(bus *events.Bus, logger *slog.Logger) *ActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandler{
		BaseHandler: NewBaseHandler(bus, logger.With("handler", "activity")),
		counts:      make(map[string]int),
	}
}

// Name returns the handler name.
func (h *ActivityHandler) Name() string {
	return "activity"
}

// Start consumes every event on the bus. It returns nil when the bus
// closes and ctx.Err() when the context ends.
func (h *ActivityHandler) Start(ctx context.Context) error {
	return h.Consume(ctx, h.Bus().SubscribeAll(100), h.handle)
}

// Counts returns a snapshot of events seen per type.
func (h *ActivityHandler) Counts() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return maps.Clone(h.counts)
}

func (h *ActivityHandler) handle(ctx context.Context, e events.Event) {
	h.mu.Lock()
	h.counts[e.EventType()]++
	h.mu.Unlock()

	log := h.Logger()
	switch ev := e.(type) {
	case *events.LibraryRequest:
		log.InfoContext(ctx, "library request",
			"type", ev.EventType(),
			"title", ev.Title,
			"show", ev.ShowTitle,
			"directory", ev.EntityKey())
	case *events.ScanCompleted:
		log.InfoContext(ctx, "scan completed",
			"directories", ev.Directories,
			"found", ev.Found,
			"added", ev.Added,
			"blocked", ev.Blocked,
			"failed", ev.Failed)
	case *events.BatchCompleted:
		log.InfoContext(ctx, "batch completed",
			"operation", ev.Operation,
			"succeeded", ev.Succeeded,
			"failed", ev.Failed,
			"aborted", ev.Aborted)
	default:
		log.DebugContext(ctx, "catalog event",
			"type", e.EventType(),
			"entity_type", e.EntityType(),
			"entity_key", e.EntityKey())
	}
}
