package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/storage"
)

// Blocked types used by the scanner and CLI. The set is open: any string
// is accepted and matched exactly.
const (
	BlockMovie   = "movie"   // movie title
	BlockTVShow  = "tvshow"  // show title
	BlockEpisode = "episode" // episode directory
)

// BlockedItem is one entry of the blocked set.
type BlockedItem struct {
	Value string
	Type  string
}

func isBlocked(ctx context.Context, q querier, value, blockType string) (bool, error) {
	var v string
	err := q.QueryRowContext(ctx,
		"SELECT value FROM blocked WHERE value = ? AND type = ?", value, blockType).Scan(&v)
	if err = storage.MapError(err); errors.Is(err, storage.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("check blocked %q: %w", value, err)
	}
	return true, nil
}

// IsBlocked reports whether (value, type) is blocked. Matching is exact:
// case and type both count.
func (c *Catalog) IsBlocked(ctx context.Context, value, blockType string) (bool, error) {
	return isBlocked(ctx, c.store, value, blockType)
}

func addBlocked(ctx context.Context, q querier, value, blockType string) (bool, error) {
	result, err := q.ExecContext(ctx,
		"INSERT OR IGNORE INTO blocked (value, type) VALUES (?, ?)", value, blockType)
	if err != nil {
		return false, fmt.Errorf("add blocked %q: %w", value, storage.MapError(err))
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// AddBlocked blocks (value, type). Blocking twice is a no-op.
func (c *Catalog) AddBlocked(ctx context.Context, value, blockType string) error {
	added, err := addBlocked(ctx, c.store, value, blockType)
	if err != nil {
		return err
	}
	if added {
		c.notify(ctx, &events.ItemBlocked{
			BaseEvent: events.NewBaseEvent(events.EventItemBlocked, events.EntityBlocked, value),
			BlockType: blockType,
		})
	}
	return nil
}

// RemoveBlocked unblocks the exact (value, type) pair.
func (c *Catalog) RemoveBlocked(ctx context.Context, value, blockType string) error {
	if _, err := c.store.ExecContext(ctx,
		"DELETE FROM blocked WHERE value = ? AND type = ?", value, blockType); err != nil {
		return fmt.Errorf("remove blocked %q: %w", value, err)
	}
	return nil
}

// BlockedItems lists the blocked set ordered by type, then value.
func (c *Catalog) BlockedItems(ctx context.Context) ([]BlockedItem, error) {
	rows, err := c.store.QueryContext(ctx, "SELECT value, type FROM blocked ORDER BY type, value")
	if err != nil {
		return nil, fmt.Errorf("list blocked: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []BlockedItem
	for rows.Next() {
		var b BlockedItem
		if err := rows.Scan(&b.Value, &b.Type); err != nil {
			return nil, fmt.Errorf("scan blocked: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked: %w", err)
	}
	return items, nil
}

// BlockKey returns the entry Block adds for item: the movie title, or
// the episode directory. Blocking a whole show is done with AddBlocked.
func BlockKey(item Item) (BlockedItem, error) {
	switch v := item.(type) {
	case *Movie:
		return BlockedItem{Value: v.Title, Type: BlockMovie}, nil
	case *Episode:
		return BlockedItem{Value: v.Directory, Type: BlockEpisode}, nil
	default:
		return BlockedItem{}, fmt.Errorf("%w: cannot block %T", ErrInvalidItem, item)
	}
}

// BlockKeys lists every entry that keeps item out of the catalog. An
// episode is kept out by its own directory or by its show.
func BlockKeys(item Item) []BlockedItem {
	switch v := item.(type) {
	case *Movie:
		return []BlockedItem{{Value: v.Title, Type: BlockMovie}}
	case *Episode:
		return []BlockedItem{
			{Value: v.Directory, Type: BlockEpisode},
			{Value: v.ShowTitle, Type: BlockTVShow},
		}
	}
	return nil
}

// BlockChecker is anything that answers IsBlocked.
type BlockChecker interface {
	IsBlocked(ctx context.Context, value, blockType string) (bool, error)
}

// BlockedBy returns the first entry of BlockKeys(item) present in the
// blocked set.
func BlockedBy(ctx context.Context, c BlockChecker, item Item) (BlockedItem, bool, error) {
	for _, key := range BlockKeys(item) {
		blocked, err := c.IsBlocked(ctx, key.Value, key.Type)
		if err != nil {
			return BlockedItem{}, false, err
		}
		if blocked {
			return key, true, nil
		}
	}
	return BlockedItem{}, false, nil
}

// Block adds item's blocked entry and deletes its row in one transaction.
// A managed item is taken out of the host library first; if that fails
// nothing changes.
func (c *Catalog) Block(ctx context.Context, item Item) error {
	key, err := BlockKey(item)
	if err != nil {
		return err
	}
	if c.library != nil && statusOf(item) == StatusManaged {
		if err := c.library.RemoveFromLibrary(ctx, item); err != nil {
			return fmt.Errorf("block %s: %w: %w", item.Key(), ErrLibraryAction, err)
		}
	}
	err = c.store.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := addBlocked(ctx, tx, key.Value, key.Type); err != nil {
			return err
		}
		_, err := removeContent(ctx, tx, RemoveRequest{MediaType: item.MediaType(), Directory: item.Key()})
		return err
	})
	if err != nil {
		return fmt.Errorf("block %s: %w", item.Key(), err)
	}

	c.notify(ctx, &events.ItemBlocked{
		BaseEvent: events.NewBaseEvent(events.EventItemBlocked, events.EntityBlocked, key.Value),
		BlockType: key.Type,
	})
	c.logger.Info("blocked", "value", key.Value, "type", key.Type, "directory", item.Key())
	return nil
}
