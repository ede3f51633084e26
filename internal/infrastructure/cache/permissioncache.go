// Package cache implements the Redis-backed permission resolution cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appaccess "rentra/internal/application/access"
	"rentra/internal/shared/logger"
)

const permissionKeyPrefix = "rentra:permissions:"

// PermissionCache stores resolved permission sets in one Redis hash per
// user, with the organization scope as the hash field. Invalidation is
// a single DEL of the user's hash, so every scope drops at once. The
// TTL bounds staleness even if an invalidation is missed.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewPermissionCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl, logger: logger}
}

func userKey(userID uint) string {
	return fmt.Sprintf("%s%d", permissionKeyPrefix, userID)
}

func scopeField(organizationID *uint) string {
	if organizationID == nil {
		return "global"
	}
	return fmt.Sprintf("org:%d", *organizationID)
}

// Get returns the cached resolution for the scope, or a miss. Cache
// errors degrade to a miss; the resolver then hits the database.
func (c *PermissionCache) Get(ctx context.Context, userID uint, organizationID *uint) (*appaccess.Resolution, bool) {
	raw, err := c.client.HGet(ctx, userKey(userID), scopeField(organizationID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("permission cache read failed", "error", err, "user_id", userID)
		}
		return nil, false
	}

	var res appaccess.Resolution
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		c.logger.Warnw("permission cache entry corrupt", "error", err, "user_id", userID)
		return nil, false
	}
	return &res, true
}

// Set stores the resolution and refreshes the hash TTL.
func (c *PermissionCache) Set(ctx context.Context, userID uint, organizationID *uint, res *appaccess.Resolution) {
	raw, err := json.Marshal(res)
	if err != nil {
		c.logger.Warnw("failed to marshal permission resolution", "error", err, "user_id", userID)
		return
	}

	key := userKey(userID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, scopeField(organizationID), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("permission cache write failed", "error", err, "user_id", userID)
	}
}

// InvalidateUser drops every cached scope for the user. A failure is
// returned to the caller; role mutations must not report success over a
// possibly stale cache.
func (c *PermissionCache) InvalidateUser(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, userKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate permission cache: %w", err)
	}
	return nil
}
