package storage

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrConstraint indicates a foreign key or check constraint violation.
	ErrConstraint = errors.New("constraint violation")

	// ErrUnavailable indicates the catalog database could not be opened or initialized.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrLocked indicates another process holds the catalog write lock.
	ErrLocked = errors.New("catalog locked by another process")
)

const sqliteBusyCode = 5

// mapSQLiteError converts SQLite errors to the package's sentinel errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return errors.Join(ErrDuplicate, err)
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") ||
		strings.Contains(errStr, "NOT NULL constraint failed") {
		return errors.Join(ErrConstraint, err)
	}
	return err
}

// MapError exposes the sentinel mapping for callers that scan rows themselves.
func MapError(err error) error { return mapSQLiteError(err) }

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
