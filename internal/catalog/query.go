package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"strings"

	"github.com/vmunix/mediacat/internal/storage"
)

// Order selects the shape and ordering of QueryContentItems.
type Order int

const (
	OrderNone        Order = iota
	OrderByShowTitle       // episodes by show, numeric season, numeric episode
	OrderBySeason          // distinct numeric seasons of one show
	OrderByTitle           // alphabetic by title
)

// Query filters content rows. Status and MediaType are required.
type Query struct {
	Status    Status
	MediaType MediaType
	Order     Order
	ShowTitle string // filter for OrderByShowTitle, required for OrderBySeason
	Season    *int   // filter for OrderByShowTitle
}

// articleKey strips a leading "The " for sorting only.
func articleKey(col string) string {
	return "(CASE WHEN " + col + " LIKE 'the %' THEN substr(" + col + ", 5) ELSE " + col + " END) COLLATE NOCASE"
}

func (q Query) build() (string, []any, error) {
	table, err := q.MediaType.table()
	if err != nil {
		return "", nil, err
	}
	if !q.Status.Valid() {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidStatus, q.Status)
	}
	if q.MediaType == MediaMovie && (q.Order == OrderByShowTitle || q.Order == OrderBySeason || q.ShowTitle != "" || q.Season != nil) {
		return "", nil, fmt.Errorf("%w: show filters need mediatype tvshow", ErrInvalidQuery)
	}

	columns := movieColumns
	if q.MediaType == MediaTVShow {
		columns = episodeColumns
	}
	conditions := []string{"status = ?"}
	args := []any{q.Status}
	var orderBy string

	switch q.Order {
	case OrderNone:
	case OrderByShowTitle:
		if q.ShowTitle != "" {
			conditions = append(conditions, "show_title = ?")
			args = append(args, q.ShowTitle)
		} else {
			orderBy = articleKey("show_title") + ", "
		}
		if q.Season != nil {
			conditions = append(conditions, "CAST(season AS INTEGER) = ?")
			args = append(args, *q.Season)
		}
		orderBy += "CAST(season AS INTEGER), CAST(episode_number AS INTEGER)"
	case OrderBySeason:
		if q.ShowTitle == "" {
			return "", nil, fmt.Errorf("%w: season list needs a show title", ErrInvalidQuery)
		}
		columns = "DISTINCT CAST(season AS INTEGER)"
		conditions = append(conditions, "show_title = ?")
		args = append(args, q.ShowTitle)
		orderBy = "CAST(season AS INTEGER)"
	case OrderByTitle:
		orderBy = "title"
	default:
		return "", nil, fmt.Errorf("%w: unknown order %d", ErrInvalidQuery, q.Order)
	}

	query := "SELECT " + columns + " FROM " + table + " WHERE " + strings.Join(conditions, " AND ")
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	return query, args, nil
}

// QueryContentItems runs q and returns a cursor over the decoded rows.
// The cursor must be closed, or drained, to release its connection.
func (c *Catalog) QueryContentItems(ctx context.Context, q Query) (*Cursor, error) {
	query, args, err := q.build()
	if err != nil {
		return nil, err
	}
	rows, err := c.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.MediaType, err)
	}

	decodeFn := scanItem
	if q.Order == OrderBySeason {
		decodeFn = scanSeason
	}
	return &Cursor{rows: rows, decode: decodeFn}, nil
}

// Items runs q and collects every row.
func (c *Catalog) Items(ctx context.Context, q Query) ([]Item, error) {
	cur, err := c.QueryContentItems(ctx, q)
	if err != nil {
		return nil, err
	}
	return Collect(cur)
}

func scanItem(rows *sql.Rows) (Item, error) {
	r, err := scanRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}
	return decode(r)
}

func scanSeason(rows *sql.Rows) (Item, error) {
	var n int
	if err := rows.Scan(&n); err != nil {
		return nil, fmt.Errorf("scan season: %w", err)
	}
	return Season(n), nil
}

// Cursor is a lazy, finite, single-pass sequence of items. Restarting
// means running the query again.
type Cursor struct {
	rows   *sql.Rows
	decode func(*sql.Rows) (Item, error)
	item   Item
	err    error
	closed bool
}

// Next advances to the next item. It returns false at the end or on the
// first error; the cursor is closed either way.
func (c *Cursor) Next() bool {
	if c.closed {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		_ = c.Close()
		return false
	}
	item, err := c.decode(c.rows)
	if err != nil {
		c.err = err
		_ = c.Close()
		return false
	}
	c.item = item
	return true
}

// Item returns the current item.
func (c *Cursor) Item() Item { return c.item }

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error { return c.err }

// Close releases the underlying rows. Safe to call more than once.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return storage.MapError(c.rows.Close())
}

// All returns the remaining items as an iterator. Check Err afterwards.
func (c *Cursor) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		defer func() { _ = c.Close() }()
		for c.Next() {
			if !yield(c.item) {
				return
			}
		}
	}
}

// Collect drains the cursor into a slice.
func Collect(c *Cursor) ([]Item, error) {
	var items []Item
	for item := range c.All() {
		items = append(items, item)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetAllShowTitles returns the distinct show titles with the given
// status, sorted case-insensitively ignoring a leading "The ".
func (c *Catalog) GetAllShowTitles(ctx context.Context, status Status) ([]string, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	rows, err := c.store.QueryContext(ctx,
		"SELECT DISTINCT show_title FROM tvshows WHERE status = ? AND show_title IS NOT NULL ORDER BY "+articleKey("show_title"),
		status)
	if err != nil {
		return nil, fmt.Errorf("list show titles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan show title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show titles: %w", err)
	}
	return titles, nil
}
