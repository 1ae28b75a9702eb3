package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// GetClient returns the process-wide client for the configured redis.addr.
func GetClient() *redisv9.Client {
	once.Do(func() {
		client = NewClient(config.GetRedisAddr())
	})
	return client
}

func NewClient(addr string) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr: addr,
	})
}

// Ping checks that the server behind c answers.
func Ping(ctx context.Context, c *redisv9.Client) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", c.Options().Addr, err)
	}
	return nil
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
