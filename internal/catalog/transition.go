package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vmunix/mediacat/internal/events"
)

// Manage imports item into the host library and marks it managed. When
// the library refuses, the row stays as it was.
func (c *Catalog) Manage(ctx context.Context, item Item) error {
	if c.library != nil {
		if err := c.library.AddToLibrary(ctx, item); err != nil {
			return fmt.Errorf("manage %s: %w: %w", item.Key(), ErrLibraryAction, err)
		}
	}
	return c.SetStatus(ctx, item, StatusManaged)
}

// MoveToStaged removes item from the host library and marks it staged.
func (c *Catalog) MoveToStaged(ctx context.Context, item Item) error {
	if c.library != nil {
		if err := c.library.RemoveFromLibrary(ctx, item); err != nil {
			return fmt.Errorf("unstage %s: %w: %w", item.Key(), ErrLibraryAction, err)
		}
	}
	return c.SetStatus(ctx, item, StatusStaged)
}

// Remove deletes item's row, first taking managed items out of the host
// library.
func (c *Catalog) Remove(ctx context.Context, item Item) error {
	if c.library != nil && statusOf(item) == StatusManaged {
		if err := c.library.RemoveFromLibrary(ctx, item); err != nil {
			return fmt.Errorf("remove %s: %w: %w", item.Key(), ErrLibraryAction, err)
		}
	}
	_, err := c.RemoveItem(ctx, item)
	return err
}

func statusOf(item Item) Status {
	switch v := item.(type) {
	case *Movie:
		return v.Status
	case *Episode:
		return v.Status
	default:
		return ""
	}
}

// BatchResult tallies a bulk transition. Each item commits on its own, so
// an aborted batch leaves the items before it transitioned.
type BatchResult struct {
	ID        uuid.UUID
	Operation string
	Total     int
	Succeeded int
	Failed    int
	Errors    []error
	Aborted   bool
}

// Err joins the per-item errors.
func (r *BatchResult) Err() error { return errors.Join(r.Errors...) }

// ManageAll imports every item matched by q.
func (c *Catalog) ManageAll(ctx context.Context, q Query) (*BatchResult, error) {
	return c.runBatch(ctx, "manage_all", q, c.Manage)
}

// MoveAllToStaged un-imports every item matched by q.
func (c *Catalog) MoveAllToStaged(ctx context.Context, q Query) (*BatchResult, error) {
	return c.runBatch(ctx, "move_all_to_staged", q, c.MoveToStaged)
}

// RemoveAllItems removes every item matched by q, one row at a time.
func (c *Catalog) RemoveAllItems(ctx context.Context, q Query) (*BatchResult, error) {
	return c.runBatch(ctx, "remove_all", q, c.Remove)
}

// runBatch collects the matching items first, then applies fn to each.
// Library failures are counted and skipped; any other error, including
// cancellation, aborts the remaining items and is returned with the tally.
func (c *Catalog) runBatch(ctx context.Context, op string, q Query, fn func(context.Context, Item) error) (*BatchResult, error) {
	if q.Order == OrderBySeason {
		return nil, fmt.Errorf("%w: %s needs content rows, not seasons", ErrInvalidQuery, op)
	}
	items, err := c.Items(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &BatchResult{ID: uuid.New(), Operation: op, Total: len(items)}
	logger := c.logger.With("batch", result.ID, "op", op)
	logger.Info("batch started", "items", result.Total)

	var abortErr error
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			abortErr = err
			break
		}
		err := fn(ctx, item)
		if err == nil {
			result.Succeeded++
			continue
		}
		result.Failed++
		result.Errors = append(result.Errors, err)
		if !errors.Is(err, ErrLibraryAction) {
			abortErr = err
			break
		}
		logger.Warn("batch item failed", "directory", item.Key(), "error", err)
	}
	result.Aborted = abortErr != nil

	c.notify(ctx, &events.BatchCompleted{
		BaseEvent: events.NewBaseEvent(events.EventBatchCompleted, events.EntityBatch, result.ID.String()),
		Operation: op,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Aborted:   result.Aborted,
	})
	logger.Info("batch finished",
		"succeeded", result.Succeeded, "failed", result.Failed, "aborted", result.Aborted)

	if abortErr != nil {
		return result, fmt.Errorf("%s aborted after %d of %d: %w", op, result.Succeeded+result.Failed, result.Total, abortErr)
	}
	return result, nil
}
