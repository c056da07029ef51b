package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// ExecContext runs a mutating statement. Statements are serialized and
// each commits on its own. Errors are mapped to the package sentinels.
func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	return res, nil
}

// QueryContext runs a read. Reads are not serialized with writers and
// see the latest committed state.
func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := retryOnBusy(ctx, func() error {
		var queryErr error
		rows, queryErr = s.db.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	return rows, nil
}

// QueryRowContext runs a single-row read, retried like QueryContext while
// the query itself reports busy. Use MapError on the Scan error to get
// ErrNotFound.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	var row *sql.Row
	_ = retryOnBusy(ctx, func() error {
		row = s.db.QueryRowContext(ctx, query, args...)
		return row.Err()
	})
	return row
}

// WithTx runs fn inside a transaction holding the write lock. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", mapSQLiteError(err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", mapSQLiteError(err))
	}
	return nil
}
