package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/storage"
)

func insertItem(ctx context.Context, q querier, item Item) (bool, error) {
	var (
		query string
		args  []any
	)
	switch v := item.(type) {
	case *Movie:
		query = `INSERT OR IGNORE INTO movies (directory, title, mediatype, status, year)
			VALUES (?, ?, 'movie', 'staged', ?)`
		args = []any{v.Directory, v.Title, v.Year}
	case *Episode:
		query = `INSERT OR IGNORE INTO tvshows (directory, title, mediatype, status, year, show_title, season, episode_number)
			VALUES (?, ?, 'tvshow', 'staged', ?, ?, ?, ?)`
		args = []any{v.Directory, v.Title, v.Year, v.ShowTitle, v.Season, v.EpisodeNumber}
	default:
		return false, fmt.Errorf("%w: cannot store %T", ErrInvalidItem, item)
	}
	if item.Key() == "" {
		return false, fmt.Errorf("%w: empty directory", ErrInvalidItem)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert %s: %w", item.Key(), storage.MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// AddContentItem stages a movie or episode. Re-adding an existing
// directory changes nothing and reports created=false. A new row is
// offered to the auto-add policy; if the library collaborator then fails,
// the error wraps ErrLibraryAction and the row stays staged.
//
// Blocked entries are not checked here. Callers filter with IsBlocked.
func (c *Catalog) AddContentItem(ctx context.Context, item Item) (bool, error) {
	created, err := insertItem(ctx, c.store, item)
	if err != nil {
		return false, err
	}
	if !created {
		c.logger.Debug("already in catalog", "directory", item.Key())
		return false, nil
	}
	setItemStatus(item, StatusStaged)

	staged := &events.ItemStaged{
		BaseEvent: events.NewBaseEvent(events.EventItemStaged, entityOf(item.MediaType()), item.Key()),
	}
	switch v := item.(type) {
	case *Movie:
		staged.Title, staged.Year = v.Title, v.Year
	case *Episode:
		staged.Title, staged.Year = v.Title, v.Year
		staged.ShowTitle, staged.Season, staged.Episode = v.ShowTitle, v.Season, v.EpisodeNumber
	}
	c.notify(ctx, staged)
	c.logger.Info("staged", "mediatype", item.MediaType(), "directory", item.Key())

	if err := c.applyPolicy(ctx, item); err != nil {
		return true, err
	}
	return true, nil
}

func getItem(ctx context.Context, q querier, m MediaType, directory string) (Item, error) {
	table, err := m.table()
	if err != nil {
		return nil, err
	}
	columns := movieColumns
	if m == MediaTVShow {
		columns = episodeColumns
	}
	r, err := scanRow(q.QueryRowContext(ctx,
		"SELECT "+columns+" FROM "+table+" WHERE directory = ?", directory))
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", m, directory, storage.MapError(err))
	}
	return decode(r)
}

// GetContentItem fetches one row. Returns ErrNotFound if it doesn't exist.
func (c *Catalog) GetContentItem(ctx context.Context, m MediaType, directory string) (Item, error) {
	return getItem(ctx, c.store, m, directory)
}

// HasContentItem reports whether directory exists in the mediatype's set.
// An empty status matches either state.
func (c *Catalog) HasContentItem(ctx context.Context, m MediaType, directory string, status Status) (bool, error) {
	table, err := m.table()
	if err != nil {
		return false, err
	}
	query := "SELECT 1 FROM " + table + " WHERE directory = ?"
	args := []any{directory}
	if status != "" {
		if !status.Valid() {
			return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		query += " AND status = ?"
		args = append(args, status)
	}

	var one int
	err = c.store.QueryRowContext(ctx, query, args...).Scan(&one)
	if err = storage.MapError(err); errors.Is(err, ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("check %s: %w", directory, err)
	}
	return true, nil
}

// Field names an updatable column.
type Field string

const (
	FieldStatus Field = "status"
	FieldTitle  Field = "title"
)

func updateField(ctx context.Context, q querier, m MediaType, directory string, field Field, value string) (int64, error) {
	table, err := m.table()
	if err != nil {
		return 0, err
	}
	switch field {
	case FieldStatus:
		if !Status(value).Valid() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
	case FieldTitle:
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	result, err := q.ExecContext(ctx,
		"UPDATE "+table+" SET "+string(field)+" = ? WHERE directory = ?", value, directory)
	if err != nil {
		return 0, fmt.Errorf("update %s %s: %w", field, directory, storage.MapError(err))
	}
	return result.RowsAffected()
}

// UpdateField sets the status or title of one row. A directory with no
// row is a no-op.
func (c *Catalog) UpdateField(ctx context.Context, m MediaType, directory string, field Field, value string) error {
	n, err := updateField(ctx, c.store, m, directory, field, value)
	if err != nil || n == 0 {
		return err
	}

	key := entityOf(m)
	switch field {
	case FieldStatus:
		c.notify(ctx, &events.ItemStatusChanged{
			BaseEvent: events.NewBaseEvent(events.EventItemStatusChanged, key, directory),
			NewStatus: value,
		})
	case FieldTitle:
		c.notify(ctx, &events.ItemRenamed{
			BaseEvent: events.NewBaseEvent(events.EventItemRenamed, key, directory),
			Title:     value,
		})
	}
	c.logger.Debug("updated", "directory", directory, "field", field, "value", value)
	return nil
}

// SetStatus moves item to status and updates the item in place.
func (c *Catalog) SetStatus(ctx context.Context, item Item, status Status) error {
	if err := c.UpdateField(ctx, item.MediaType(), item.Key(), FieldStatus, string(status)); err != nil {
		return err
	}
	setItemStatus(item, status)
	return nil
}

func (c *Catalog) setStatus(ctx context.Context, q querier, m MediaType, directory string, status Status) error {
	_, err := updateField(ctx, q, m, directory, FieldStatus, string(status))
	return err
}

func setItemStatus(item Item, status Status) {
	switch v := item.(type) {
	case *Movie:
		v.Status = status
	case *Episode:
		v.Status = status
	}
}
