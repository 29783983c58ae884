package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisService owns the shared Redis connection
type RedisService struct {
	client *redis.Client
}

// NewRedisService connects to Redis and verifies the connection
func NewRedisService(ctx context.Context, address, password string, db int) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisService{client: client}, nil
}

// Client exposes the underlying client for packages that issue commands
func (s *RedisService) Client() *redis.Client {
	return s.client
}

// HealthCheck verifies Redis connectivity
func (s *RedisService) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisService) Close() error {
	return s.client.Close()
}
