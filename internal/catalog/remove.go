package catalog

import (
	"context"
	"fmt"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/storage"
)

// RemoveMode is the delete shape a RemoveRequest resolves to.
type RemoveMode int

const (
	RemoveByStatus    RemoveMode = iota // every row of Status and MediaType
	RemoveByShow                        // every episode of Status and ShowTitle
	RemoveBySeason                      // every episode of ShowTitle and Season
	RemoveByDirectory                   // exactly one row
)

func (m RemoveMode) String() string {
	switch m {
	case RemoveByDirectory:
		return "directory"
	case RemoveBySeason:
		return "season"
	case RemoveByShow:
		return "show"
	default:
		return "status"
	}
}

// RemoveRequest describes a delete. Several fields may be set; Mode picks
// exactly one interpretation by priority directory > show+season > show >
// status+mediatype, and the other fields are ignored.
type RemoveRequest struct {
	MediaType MediaType
	Status    Status // required for RemoveByShow and RemoveByStatus; optional filter for RemoveBySeason
	ShowTitle string
	Directory string
	Season    *int
}

// Mode returns the delete shape the request resolves to.
func (r RemoveRequest) Mode() RemoveMode {
	switch {
	case r.Directory != "":
		return RemoveByDirectory
	case r.ShowTitle != "" && r.Season != nil:
		return RemoveBySeason
	case r.ShowTitle != "":
		return RemoveByShow
	default:
		return RemoveByStatus
	}
}

func removeContent(ctx context.Context, q querier, r RemoveRequest) (int64, error) {
	table, err := r.MediaType.table()
	if err != nil {
		return 0, err
	}
	if r.Status != "" && !r.Status.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}

	var (
		query string
		args  []any
	)
	mode := r.Mode()
	switch mode {
	case RemoveByDirectory:
		query = "DELETE FROM " + table + " WHERE directory = ?"
		args = []any{r.Directory}
	case RemoveBySeason, RemoveByShow:
		if r.MediaType != MediaTVShow {
			return 0, fmt.Errorf("%w: show filters need mediatype tvshow", ErrInvalidQuery)
		}
		if mode == RemoveBySeason {
			query = "DELETE FROM tvshows WHERE show_title = ? AND CAST(season AS INTEGER) = ?"
			args = []any{r.ShowTitle, *r.Season}
			if r.Status != "" {
				query += " AND status = ?"
				args = append(args, r.Status)
			}
			break
		}
		if r.Status == "" {
			return 0, fmt.Errorf("%w: removing a show needs a status", ErrInvalidStatus)
		}
		query = "DELETE FROM tvshows WHERE status = ? AND show_title = ?"
		args = []any{r.Status, r.ShowTitle}
	default:
		if r.Season != nil {
			return 0, fmt.Errorf("%w: season given without show title", ErrInvalidQuery)
		}
		if r.Status == "" {
			return 0, fmt.Errorf("%w: bulk remove needs a status", ErrInvalidStatus)
		}
		query = "DELETE FROM " + table + " WHERE status = ? AND mediatype = ?"
		args = []any{r.Status, r.MediaType}
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("remove by %s: %w", mode, storage.MapError(err))
	}
	return result.RowsAffected()
}

// RemoveContent deletes the rows selected by r and returns how many went.
// Deleting nothing is not an error.
func (c *Catalog) RemoveContent(ctx context.Context, r RemoveRequest) (int64, error) {
	n, err := removeContent(ctx, c.store, r)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.notify(ctx, &events.ItemRemoved{
			BaseEvent: events.NewBaseEvent(events.EventItemRemoved, entityOf(r.MediaType), r.Directory),
			Mode:      r.Mode().String(),
			Status:    string(r.Status),
			ShowTitle: r.ShowTitle,
			Season:    r.Season,
			Rows:      n,
		})
	}
	c.logger.Info("removed", "mode", r.Mode(), "mediatype", r.MediaType, "rows", n)
	return n, nil
}

// RemoveItem deletes the row for item.
func (c *Catalog) RemoveItem(ctx context.Context, item Item) (int64, error) {
	if item.Key() == "" {
		return 0, fmt.Errorf("%w: empty directory", ErrInvalidItem)
	}
	return c.RemoveContent(ctx, RemoveRequest{MediaType: item.MediaType(), Directory: item.Key()})
}

// RemoveSeason deletes every episode of a show's season with the given status.
func (c *Catalog) RemoveSeason(ctx context.Context, status Status, showTitle string, season int) (int64, error) {
	return c.RemoveContent(ctx, RemoveRequest{
		MediaType: MediaTVShow,
		Status:    status,
		ShowTitle: showTitle,
		Season:    &season,
	})
}

// RemoveShow deletes every episode of a show with the given status.
func (c *Catalog) RemoveShow(ctx context.Context, status Status, showTitle string) (int64, error) {
	return c.RemoveContent(ctx, RemoveRequest{MediaType: MediaTVShow, Status: status, ShowTitle: showTitle})
}

// RemoveAll deletes every row of a mediatype with the given status.
func (c *Catalog) RemoveAll(ctx context.Context, status Status, m MediaType) (int64, error) {
	return c.RemoveContent(ctx, RemoveRequest{MediaType: m, Status: status})
}
