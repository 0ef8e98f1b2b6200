package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/gym-buddy/internal/config"
)

// likeCountTTL bounds how stale a received-like counter may get.
const likeCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
	// RecoTTL is how long a computed recommendation list stays valid.
	RecoTTL time.Duration
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts), RecoTTL: cfg.Reco.CacheTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

// KeyForLikeCount generates Redis key for the number of users who liked userID.
func (c *RedisCache) KeyForLikeCount(userID string) string {
	return fmt.Sprintf("likes:count:%s", userID)
}

// KeyForRecommendations generates Redis key for a user's cached recommendation list.
func (c *RedisCache) KeyForRecommendations(userID string) string {
	return fmt.Sprintf("reco:%s", userID)
}

// SetLikeCount stores the received-like counter of userID.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID string, count int64) error {
	// Always refresh TTL when updating
	return c.Client.Set(ctx, c.KeyForLikeCount(userID), count, likeCountTTL).Err()
}

// GetLikeCount returns the cached counter; ok is false on a cache miss.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID string) (int64, bool, error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, likeCountTTL).Err()
	return n, true, nil
}

// InvalidateLikeCount drops the counter so the next read recounts from the DB.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, c.KeyForLikeCount(userID)).Err()
}

// SetRecommendations caches ids (best first) for userID.
func (c *RedisCache) SetRecommendations(ctx context.Context, userID string, ids []string) error {
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	return c.Client.Set(ctx, c.KeyForRecommendations(userID), b, c.RecoTTL).Err()
}

// GetRecommendations returns cached ids; ok is false on a cache miss.
func (c *RedisCache) GetRecommendations(ctx context.Context, userID string) ([]string, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForRecommendations(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	var ids []string
	if err := json.Unmarshal(val, &ids); err != nil {
		return nil, false, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	return ids, true, nil
}

// InvalidateRecommendations drops the cached lists of the given users.
func (c *RedisCache) InvalidateRecommendations(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.KeyForRecommendations(id)
	}
	return c.Client.Del(ctx, keys...).Err()
}

// InvalidateAllRecommendations drops every cached recommendation list.
// Used when a profile changes, since it may move in anyone's ranking.
func (c *RedisCache) InvalidateAllRecommendations(ctx context.Context) error {
	iter := c.Client.Scan(ctx, 0, c.KeyForRecommendations("*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan recommendations: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
