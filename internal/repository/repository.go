// Package repository provides database access layer.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kennel/kennel/internal/model"
)

// Default pool settings.
const (
	DefaultBusyTimeout  = 5 * time.Second
	DefaultMaxOpenConns = 10
)

// Options configures the embedded database.
type Options struct {
	// Path is the SQLite file path. It is created if absent.
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
	// LogSQL routes every statement through the slog bridge at debug level.
	LogSQL bool
}

// Repository provides database access methods.
// A single Repository is shared by all requests; every method opens its own
// context-scoped session on the shared pool.
type Repository struct {
	db *gorm.DB
}

// New opens the SQLite file, configures the shared pool and creates
// the users and dogs tables if they do not exist yet.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Repository, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("database path is required")
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(sqlite.Open(buildDSN(opts)), &gorm.Config{
		Logger:         newGormLogger(logger, opts.LogSQL),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxOpenConns)

	// Verify connection
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.AutoMigrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return repo, nil
}

// buildDSN appends connection parameters so that every pooled connection
// gets the same pragmas, not only the first one.
func buildDSN(opts Options) string {
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprintf("%d", opts.BusyTimeout.Milliseconds()))
	params.Set("_journal_mode", "WAL")
	params.Set("_foreign_keys", "on")
	// Transactions take the write lock at BEGIN.
	params.Set("_txlock", "immediate")

	return opts.Path + "?" + params.Encode()
}

// AutoMigrate creates missing tables and indexes. Existing columns are never dropped.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	models := []any{
		&model.User{},
		&model.Dog{},
	}

	if err := r.session(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying ORM handle.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// session returns a unit of work bound to ctx. Connections it borrows go
// back to the pool when the statement finishes or ctx is cancelled.
func (r *Repository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// inTx runs fn inside a single transaction. fn's error, or a panic inside
// fn, rolls the transaction back; otherwise it is committed.
func (r *Repository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.session(ctx).Transaction(fn)
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// normalizePage clamps pagination arguments to the values SQLite accepts.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 1
	}
	return skip, limit
}
