package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kennel/kennel/internal/cache"
	"github.com/kennel/kennel/internal/metrics"
	"github.com/kennel/kennel/internal/model"
)

// UserStore is the persistence surface UserService needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context, skip, limit int) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) (*model.User, error)
}

// UserCache is an optional read-through cache for single-user lookups.
// SetUser and MarkUserDeleted record committed writes and always apply.
// FillUser and SetNegativeCache record reads and must not overwrite state
// left by a write that committed after the read.
type UserCache interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	FillUser(ctx context.Context, user *model.User) error
	MarkUserDeleted(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
	IsNegativelyCached(ctx context.Context, id int64) (bool, error)
	SetNegativeCache(ctx context.Context, id int64) error
}

// UserService handles user business logic.
type UserService struct {
	store   UserStore
	cache   UserCache
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewUserService creates a new UserService. userCache may be nil to disable caching.
func NewUserService(store UserStore, userCache UserCache, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		store:   store,
		cache:   userCache,
		metrics: recorder,
		logger:  logger,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser inserts a user. A duplicate email yields ErrEmailExists.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	user := &model.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.metrics.IncUserCreated()

	// Also clears a negative entry left by a lookup before the row existed.
	s.storeInCache(ctx, user)

	return user, nil
}

// ListUsers returns one page of users.
func (s *UserService) ListUsers(ctx context.Context, page Page) ([]model.User, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser returns the user with the given ID, consulting the cache first when one is configured.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if s.cache == nil {
		user, err := s.store.GetUserByID(ctx, id)
		return user, mapRepoError(err)
	}

	// Step 1: Try cache
	cached, err := s.cache.GetUser(ctx, id)
	if err == nil {
		s.metrics.IncUserCacheHit()
		return cached, nil
	}

	// Step 2: Check negative cache
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "user cache read failed", "user_id", id, "error", err)
	} else {
		s.metrics.IncUserCacheMiss()
		if isNegative, _ := s.cache.IsNegativelyCached(ctx, id); isNegative {
			return nil, ErrUserNotFound
		}
	}

	// Step 3: DB lookup
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		if errors.Is(err, ErrUserNotFound) {
			if err := s.cache.SetNegativeCache(ctx, id); err != nil {
				s.logger.WarnContext(ctx, "user cache negative write failed", "user_id", id, "error", err)
			}
		}
		return nil, err
	}

	// Step 4: Backfill cache
	if err := s.cache.FillUser(ctx, user); err != nil {
		s.logger.WarnContext(ctx, "user cache write failed", "user_id", id, "error", err)
	}

	return user, nil
}

// UpdateUser overwrites only the fields set in patch and returns the stored result.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.metrics.IncUserUpdated()
	s.storeInCache(ctx, user)

	return user, nil
}

// DeleteUser removes the user and returns its last known values.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.metrics.IncUserDeleted()

	if s.cache != nil {
		if err := s.cache.MarkUserDeleted(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "user cache delete marker failed", "user_id", id, "error", err)
			s.evict(ctx, id)
		}
	}

	return user, nil
}

// storeInCache writes a freshly committed row. If that fails, the stale
// entry is evicted instead.
func (s *UserService) storeInCache(ctx context.Context, user *model.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUser(ctx, user); err != nil {
		s.logger.WarnContext(ctx, "user cache write failed", "user_id", user.ID, "error", err)
		s.evict(ctx, user.ID)
	}
}

// evict drops any cached state for id. Failures are logged, never returned.
func (s *UserService) evict(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteUser(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "user cache eviction failed", "user_id", id, "error", err)
	}
}
