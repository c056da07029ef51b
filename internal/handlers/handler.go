// Package handlers holds long-running consumers of the catalog event bus.
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/mediacat/internal/events"
)

// Handler consumes events until its context ends or the bus closes.
type Handler interface {
	Start(ctx context.Context) error
	Name() string
}

// BaseHandler carries the bus and logger every handler needs, plus the
// subscription loop.
type BaseHandler struct {
	bus    *events.Bus
	logger *slog.Logger
}

// NewBaseHandler creates a base handler.
func NewBaseHandler(bus *events.Bus, logger *slog.Logger) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BaseHandler{bus: bus, logger: logger}
}

func (h *BaseHandler) Bus() *events.Bus     { return h.bus }
func (h *BaseHandler) Logger() *slog.Logger { return h.logger }

// Consume feeds events from ch to fn until ch closes (nil) or ctx ends
// (ctx.Err()). On cancellation ch is unsubscribed from the bus.
func (h *BaseHandler) Consume(ctx context.Context, ch <-chan events.Event, fn func(context.Context, events.Event)) error {
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			fn(ctx, e)
		case <-ctx.Done():
			h.bus.Unsubscribe(ch)
			return ctx.Err()
		}
	}
}
