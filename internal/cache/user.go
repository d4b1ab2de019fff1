package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kennel/kennel/internal/model"
)

// Cache key prefixes and TTLs.
const (
	userKeyPrefix     = "user:"
	negCacheKeySuffix = ":neg"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = 5 * time.Minute

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = 30 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// userKey returns the hash key for a user ID.
func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func negKey(id int64) string {
	return userKey(id) + negCacheKeySuffix
}

// GetUser retrieves a user from cache by ID.
// Returns ErrCacheMiss if not found or if the entry is unusable.
func (c *Cache) GetUser(ctx context.Context, id int64) (*model.User, error) {
	result, err := c.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	user, ok := decodeUser(result)
	if !ok || user.ID != id {
		return nil, ErrCacheMiss
	}

	return user, nil
}

// SetUser stores a user in cache and clears any negative entry for its ID.
// Callers use it after a committed write, so it always wins.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userKey(user.ID)

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeUser(user))
	pipe.Expire(ctx, key, c.userTTL)
	pipe.Del(ctx, negKey(user.ID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// FillUser backfills a user read from the database. The write is skipped
// when the ID already has a cached row or a negative entry, or when either
// key changes while the transaction is open.
func (c *Cache) FillUser(ctx context.Context, user *model.User) error {
	key, neg := userKey(user.ID), negKey(user.ID)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key, neg).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encodeUser(user))
			pipe.Expire(ctx, key, c.userTTL)
			return nil
		})
		return err
	}, key, neg)

	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("failed to backfill user: %w", err)
	}

	return nil
}

// MarkUserDeleted drops the cached row and records the ID as not found.
func (c *Cache) MarkUserDeleted(ctx context.Context, id int64) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, userKey(id))
	pipe.SetEx(ctx, negKey(id), "", NegativeCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}

	return nil
}

// DeleteUser removes a user and its negative entry from cache.
func (c *Cache) DeleteUser(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, userKey(id), negKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}

	return nil
}

// IsNegativelyCached checks if a user ID is in negative cache.
func (c *Cache) IsNegativelyCached(ctx context.Context, id int64) (bool, error) {
	exists, err := c.client.Exists(ctx, negKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check negative cache: %w", err)
	}

	return exists > 0, nil
}

// SetNegativeCache marks a user ID as not found unless a row for it has
// been cached in the meantime.
func (c *Cache) SetNegativeCache(ctx context.Context, id int64) error {
	key, neg := userKey(id), negKey(id)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetEx(ctx, neg, "", NegativeCacheTTL)
			return nil
		})
		return err
	}, key)

	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}

// encodeUser flattens a user into hash fields.
func encodeUser(user *model.User) map[string]any {
	cached := user.ToCachedUser()
	return map[string]any{
		"id":    cached.ID,
		"name":  cached.Name,
		"email": cached.Email,
	}
}

// decodeUser rebuilds a user from hash fields.
func decodeUser(fields map[string]string) (*model.User, bool) {
	if len(fields) == 0 {
		return nil, false
	}

	cached := &model.CachedUser{
		ID:    fields["id"],
		Name:  fields["name"],
		Email: fields["email"],
	}

	return cached.ToUser()
}
