package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "managed.db")
	s, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesSchema(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, table := range []string{"movies", "tvshows", "synced", "blocked", "events"} {
		var name string
		err := s.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "managed.db")
	ctx := context.Background()

	s, err := Open(ctx, Options{Path: path})
	require.NoError(t, err)
	_, err = s.ExecContext(ctx,
		"INSERT INTO movies (directory, title, mediatype, status, year) VALUES (?, ?, 'movie', 'staged', ?)",
		"/m/heat.strm", "Heat", 1995)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{Path: path})
	require.NoError(t, err)
	defer s.Close()

	var count int
	require.NoError(t, s.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&count))
	assert.Equal(t, 1, count, "reopening must keep existing rows")
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOpen_SecondWriterLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "managed.db")
	ctx := context.Background()

	first, err := Open(ctx, Options{Path: path})
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(ctx, Options{Path: path, LockTimeout: 100 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Options{Path: MemoryPath})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ExecContext(context.Background(),
		"INSERT INTO synced (directory, label, type) VALUES ('/a', 'A', 'movies')")
	require.NoError(t, err)
}

func TestClose_Twice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "managed.db")
	s, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	// Lock is released, a new writer can open.
	again, err := Open(context.Background(), Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestExecContext_MapsConstraintErrors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ExecContext(ctx,
		"INSERT INTO blocked (value, type) VALUES ('Heat', 'movie')")
	require.NoError(t, err)

	_, err = s.ExecContext(ctx,
		"INSERT INTO blocked (value, type) VALUES ('Heat', 'movie')")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.ExecContext(ctx,
		"INSERT INTO movies (directory, title, mediatype, status) VALUES ('/x', 'X', 'movie', 'archived')")
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO synced (directory, label, type) VALUES ('/a', 'A', 'movies')"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, s.QueryRowContext(ctx, "SELECT COUNT(*) FROM synced").Scan(&count))
	assert.Zero(t, count)
}

func TestWithTx_Commits(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO synced (directory, label, type) VALUES ('/a', 'A', 'movies')")
		return err
	})
	require.NoError(t, err)

	var label string
	require.NoError(t, s.QueryRowContext(ctx, "SELECT label FROM synced WHERE directory = '/a'").Scan(&label))
	assert.Equal(t, "A", label)
}

func TestNonASCIIRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	title := "Amélie — 天気の子 🎬"

	_, err := s.ExecContext(ctx,
		"INSERT INTO movies (directory, title, mediatype, status, year) VALUES (?, ?, 'movie', 'staged', 2001)",
		"/m/amelie.strm", title)
	require.NoError(t, err)

	var got string
	require.NoError(t, s.QueryRowContext(ctx, "SELECT title FROM movies WHERE directory = ?", "/m/amelie.strm").Scan(&got))
	assert.Equal(t, title, got)
}
