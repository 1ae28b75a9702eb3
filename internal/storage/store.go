// Package storage provides the durable key-value store behind the city list.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open builds the backend named by storage.driver.
func Open(ctx context.Context) (KV, error) {
	switch driver := config.GetStorageDriver(); driver {
	case "", "redis":
		c := redis.GetClient()
		if err := redis.Ping(ctx, c); err != nil {
			return nil, err
		}
		return NewRedisStore(c), nil
	case "sqlite":
		return NewSQLiteStore(config.GetSQLitePath())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
