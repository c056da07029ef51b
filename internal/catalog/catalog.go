package catalog

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/storage"
)

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks . LibraryAction,MetadataResolver,Notifier

// LibraryAction imports items into, and removes them from, the host's
// playable library.
type LibraryAction interface {
	AddToLibrary(ctx context.Context, item Item) error
	RemoveFromLibrary(ctx context.Context, item Item) error
}

// MetadataResolver reports whether metadata for an item already exists.
type MetadataResolver interface {
	HasMetadata(ctx context.Context, item Item) (bool, error)
}

// Notifier receives catalog events. Failures are logged and dropped.
type Notifier interface {
	Publish(ctx context.Context, e events.Event) error
}

// querier abstracts *storage.Store and *sql.Tx for shared query logic.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Catalog is the only component that mutates catalog rows.
type Catalog struct {
	store    *storage.Store
	policy   Policy
	library  LibraryAction
	metadata MetadataResolver
	notifier Notifier
	logger   *slog.Logger
}

// New creates a catalog over an open store. Collaborators are optional
// and attached with the Set methods.
func New(store *storage.Store, policy Policy, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		store:  store,
		policy: policy,
		logger: logger.With("component", "catalog"),
	}
}

// SetLibrary attaches the host library collaborator.
func (c *Catalog) SetLibrary(l LibraryAction) { c.library = l }

// SetMetadata attaches the metadata resolver used by the WithMetadata policy.
func (c *Catalog) SetMetadata(m MetadataResolver) { c.metadata = m }

// SetNotifier attaches the event sink.
func (c *Catalog) SetNotifier(n Notifier) { c.notifier = n }

func (c *Catalog) notify(ctx context.Context, e events.Event) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Publish(ctx, e); err != nil {
		c.logger.Debug("notify", "type", e.EventType(), "error", err)
	}
}

func entityOf(m MediaType) string {
	if m == MediaMovie {
		return events.EntityMovie
	}
	return events.EntityTVShow
}
