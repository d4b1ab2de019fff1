package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := New(context.Background(), Options{
		Path: filepath.Join(t.TempDir(), "test.db"),
	}, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := New(context.Background(), Options{}, nil)
	require.Error(t, err)
}

func TestNew_CreatesTables(t *testing.T) {
	repo := newTestRepository(t)

	migrator := repo.DB().Migrator()
	assert.True(t, migrator.HasTable("users"))
	assert.True(t, migrator.HasTable("dogs"))
}

func TestNew_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := New(ctx, Options{Path: path}, logger)
	require.NoError(t, err)
	require.NoError(t, first.CreateDog(ctx, newDog("Rex", 3, "Lab")))
	require.NoError(t, first.Close())

	second, err := New(ctx, Options{Path: path}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	dogs, err := second.ListDogs(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	assert.Equal(t, "Rex", dogs[0].Name)
}

func TestRepository_Ping(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Ping(context.Background()))
}

func TestRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.CreateDog(ctx, newDog("dog", i, "mutt"))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	dogs, err := repo.ListDogs(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, dogs, workers)
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(Options{Path: "./test.db", BusyTimeout: DefaultBusyTimeout})

	assert.True(t, strings.HasPrefix(dsn, "./test.db?"))
	assert.Contains(t, dsn, "_busy_timeout=5000")
	assert.Contains(t, dsn, "_journal_mode=WAL")
	assert.Contains(t, dsn, "_foreign_keys=on")
	assert.Contains(t, dsn, "_txlock=immediate")
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{"defaults pass through", 0, 10, 0, 10},
		{"negative skip", -5, 10, 0, 10},
		{"zero limit", 3, 0, 3, 1},
		{"negative limit", 0, -1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, limit := normalizePage(tt.skip, tt.limit)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
