// Package hostlib connects the catalog to the host media library. The
// host listens on the event bus for add and remove requests.
package hostlib

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/mediacat/internal/catalog"
	"github.com/vmunix/mediacat/internal/events"
)

// Publisher is the part of *events.Bus the bridge uses.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Bridge implements catalog.LibraryAction by publishing library requests.
type Bridge struct {
	bus    Publisher
	logger *slog.Logger
}

var _ catalog.LibraryAction = (*Bridge)(nil)

// NewBridge creates a bridge publishing on bus.
func NewBridge(bus Publisher, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{bus: bus, logger: logger.With("component", "hostlib")}
}

// AddToLibrary asks the host to import item.
func (b *Bridge) AddToLibrary(ctx context.Context, item catalog.Item) error {
	return b.request(ctx, events.EventLibraryAddRequested, item)
}

// RemoveFromLibrary asks the host to drop item.
func (b *Bridge) RemoveFromLibrary(ctx context.Context, item catalog.Item) error {
	return b.request(ctx, events.EventLibraryRemoveRequested, item)
}

func (b *Bridge) request(ctx context.Context, eventType string, item catalog.Item) error {
	e, err := Request(eventType, item)
	if err != nil {
		return err
	}
	if err := b.bus.Publish(ctx, e); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	b.logger.Debug("library request", "type", eventType, "directory", item.Key())
	return nil
}

// Request builds the library request event for item.
func Request(eventType string, item catalog.Item) (*events.LibraryRequest, error) {
	switch v := item.(type) {
	case *catalog.Movie:
		return &events.LibraryRequest{
			BaseEvent: events.NewBaseEvent(eventType, events.EntityMovie, v.Directory),
			Title:     v.Title,
			Year:      v.Year,
		}, nil
	case *catalog.Episode:
		return &events.LibraryRequest{
			BaseEvent: events.NewBaseEvent(eventType, events.EntityTVShow, v.Directory),
			Title:     v.Title,
			Year:      v.Year,
			ShowTitle: v.ShowTitle,
			Season:    v.Season,
			Episode:   v.EpisodeNumber,
		}, nil
	default:
		return nil, fmt.Errorf("%w: no library entry for %T", catalog.ErrInvalidItem, item)
	}
}
