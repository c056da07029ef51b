// Package storage owns the catalog's SQLite database: opening, schema
// migrations, single-writer discipline and error mapping.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vmunix/mediacat/internal/migrations"
)

// MemoryPath opens a private in-memory database. No lock file is taken.
const MemoryPath = ":memory:"

const (
	defaultBusyTimeout = 5 * time.Second
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// Options configures Open.
type Options struct {
	Path        string
	BusyTimeout time.Duration // 0 = 5s
	LockTimeout time.Duration // 0 = 5s
	Logger      *slog.Logger
}

// Store is the catalog's storage engine. Reads run concurrently; writes
// are serialized through mu and, across processes, through the file lock.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu        sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// Open creates or opens the catalog database at opts.Path, takes the
// write lock and applies all pending migrations. Every failure is wrapped
// in ErrUnavailable and leaves nothing open.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: database path is empty", ErrUnavailable)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	s := &Store{path: opts.Path, logger: logger}

	memory := opts.Path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %w", ErrUnavailable, err)
		}
		if err := s.acquireLock(ctx, opts.LockTimeout); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(ON)",
		opts.Path, busy.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		s.releaseLock()
		return nil, fmt.Errorf("%w: open database: %w", ErrUnavailable, err)
	}
	if memory {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	s.db = db

	if err := db.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: ping database: %w", ErrUnavailable, err)
	}

	if err := s.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	logger.Debug("catalog opened", "path", opts.Path)
	return s, nil
}

func (s *Store) acquireLock(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	s.lock = flock.New(s.path + ".lock")

	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: acquire lock: %w", ErrUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: %w: %s", ErrUnavailable, ErrLocked, s.lock.Path())
	}
	return nil
}

func (s *Store) releaseLock() {
	if s.lock == nil {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("release catalog lock", "path", s.lock.Path(), "error", err)
	}
}

func (s *Store) migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations.FS())
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Info("applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// Close closes the database and releases the write lock. It is safe to
// call more than once.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if s.db != nil {
			s.closeErr = s.db.Close()
		}
		s.releaseLock()
	})
	return s.closeErr
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }
