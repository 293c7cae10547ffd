package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	leaderboardKeyPrefix = "leaderboard:"
	leaderboardGenKey    = leaderboardKeyPrefix + "gen"
)

// RedisLeaderboardCache caches leaderboards per month. Invalidate bumps a
// generation counter instead of deleting keys; old generations age out via TTL.
// A nil client disables it.
type RedisLeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLeaderboardCache(client *redis.Client, ttl time.Duration) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{client: client, ttl: ttl}
}

func leaderboardKey(gen int64, month string) string {
	if month == "" {
		month = "all"
	}
	return fmt.Sprintf("%s%d:%s", leaderboardKeyPrefix, gen, month)
}

func (c *RedisLeaderboardCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, leaderboardGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisLeaderboardCache) Get(ctx context.Context, month string) ([]models.EmployeePerformance, int64, bool) {
	if c == nil || c.client == nil {
		return nil, 0, false
	}
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, -1, false
	}
	raw, err := c.client.Get(ctx, leaderboardKey(gen, month)).Bytes()
	if err != nil {
		return nil, gen, false
	}
	var rows []models.EmployeePerformance
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, gen, false
	}
	return rows, gen, true
}

// Set writes rows computed under gen. Rows from an older generation are dropped.
func (c *RedisLeaderboardCache) Set(ctx context.Context, month string, gen int64, rows []models.EmployeePerformance) {
	if c == nil || c.client == nil || gen < 0 {
		return
	}
	current, err := c.generation(ctx)
	if err != nil || current != gen {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, leaderboardKey(gen, month), raw, c.ttl).Err(); err != nil {
		logger.Log.Warn("⚠️ Failed to cache leaderboard", zap.Error(err))
	}
}

// Invalidate retires every cached month.
func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, leaderboardGenKey).Err(); err != nil {
		logger.Log.Warn("⚠️ Failed to invalidate leaderboard cache", zap.Error(err))
	}
}
