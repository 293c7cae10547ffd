package database

import (
	"context"
	"fmt"
	"time"

	"pulsepad-backend/src/logger"

	"github.com/redis/go-redis/v9"
)

// RedisClient stays nil when REDIS_URI is empty; callers treat that as dev mode.
var (
	RedisClient *redis.Client
	RedisURI    string
)

func InitRedis(uri string) error {
	if uri == "" {
		logger.Log.Warn("⚠️ REDIS_URI not set. Redis features are disabled.")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     uri, // e.g. localhost:6379
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := c.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	RedisClient = c
	RedisURI = uri
	logger.Log.Info("✅ Redis connected successfully")
	return nil
}
