package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "pulsepad-backend/src/database"

	"github.com/redis/go-redis/v9"
)

// BlacklistToken stores a revoked token id until it would have expired anyway.
// Returns nil if Redis is not available (development mode).
func BlacklistToken(ctx context.Context, tokenID string, expiresIn time.Duration) error {
	client := DB.RedisClient
	if client == nil {
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", tokenID)
	if err := client.Set(ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports whether tokenID was revoked.
// Returns false if Redis is not available (development mode).
func IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	client := DB.RedisClient
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", tokenID)
	_, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}
