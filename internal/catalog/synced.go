package catalog

import (
	"context"
	"fmt"
)

// SyncedDirectory is a source directory watched for new content.
type SyncedDirectory struct {
	Directory string
	Label     string
	Type      string // "movies", "tvshows", "movie", "tvshow", ...
}

// AddSynced records a synced directory, replacing the label and type of
// an existing path.
func (c *Catalog) AddSynced(ctx context.Context, path, label, syncedType string) error {
	if path == "" {
		return fmt.Errorf("%w: empty synced directory", ErrInvalidItem)
	}
	if _, err := c.store.ExecContext(ctx,
		"INSERT OR REPLACE INTO synced (directory, label, type) VALUES (?, ?, ?)",
		path, label, syncedType); err != nil {
		return fmt.Errorf("add synced %s: %w", path, err)
	}
	return nil
}

// RemoveSynced forgets one synced directory. Catalog rows are untouched.
func (c *Catalog) RemoveSynced(ctx context.Context, path string) error {
	if _, err := c.store.ExecContext(ctx, "DELETE FROM synced WHERE directory = ?", path); err != nil {
		return fmt.Errorf("remove synced %s: %w", path, err)
	}
	return nil
}

// RemoveAllSynced clears the synced set.
func (c *Catalog) RemoveAllSynced(ctx context.Context) error {
	if _, err := c.store.ExecContext(ctx, "DELETE FROM synced"); err != nil {
		return fmt.Errorf("clear synced: %w", err)
	}
	return nil
}

// GetSyncedDirectories lists synced directories, optionally of one type,
// sorted by label ignoring a leading "The ".
func (c *Catalog) GetSyncedDirectories(ctx context.Context, syncedType string) ([]SyncedDirectory, error) {
	query := "SELECT directory, label, type FROM synced"
	var args []any
	if syncedType != "" {
		query += " WHERE type = ?"
		args = append(args, syncedType)
	}
	query += " ORDER BY " + articleKey("label")

	rows, err := c.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list synced: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dirs []SyncedDirectory
	for rows.Next() {
		var d SyncedDirectory
		if err := rows.Scan(&d.Directory, &d.Label, &d.Type); err != nil {
			return nil, fmt.Errorf("scan synced: %w", err)
		}
		dirs = append(dirs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate synced: %w", err)
	}
	return dirs, nil
}
