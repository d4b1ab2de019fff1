// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kennel/kennel/internal/model"
	"github.com/kennel/kennel/internal/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRepository opens a fresh SQLite file in a per-test temp directory.
// The pool is closed when the test finishes.
func NewRepository(t testing.TB) *repository.Repository {
	t.Helper()

	repo, err := repository.New(context.Background(), repository.Options{
		Path: filepath.Join(t.TempDir(), "test.db"),
	}, DiscardLogger())
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Int64

// UniqueEmail generates an email address no other test will use.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// NewTestUser creates an unsaved user with a unique email.
func NewTestUser(t testing.TB, name string) *model.User {
	t.Helper()
	return &model.User{
		Name:  name,
		Email: UniqueEmail(name),
	}
}
