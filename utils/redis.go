package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"interviewsched/config"
)

// NewRedisClient returns a client for one logical Redis DB.
func NewRedisClient(cfg *config.Config, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})
}

// PingRedis checks connectivity within timeout.
func PingRedis(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
