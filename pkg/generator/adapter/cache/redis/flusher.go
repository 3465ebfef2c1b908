// Package redis flushes a Redis backed object cache.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "cache"

// Flusher runs FLUSHDB on the configured database.
type Flusher struct {
	client *redis.Client
}

var _ cache.Flusher = (*Flusher)(nil)

// NewFlusher creates a Flusher. The connection is established lazily.
func NewFlusher(cfg config.CacheConfig) *Flusher {
	return NewFlusherWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}))
}

// NewFlusherWithClient wraps an existing client.
func NewFlusherWithClient(client *redis.Client) *Flusher {
	return &Flusher{client: client}
}

// Flush implements cache.Flusher.
func (f *Flusher) Flush(ctx context.Context) error {
	if err := f.client.FlushDB(ctx).Err(); err != nil {
		return exception.Storage(moduleName, fmt.Sprintf("failed to flush redis db %d", f.client.Options().DB), err)
	}
	logger.Infof("Flushed redis db %d at %s.", f.client.Options().DB, f.client.Options().Addr)
	return nil
}

// Close closes the client.
func (f *Flusher) Close() error {
	return f.client.Close()
}
