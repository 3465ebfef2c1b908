// Package provider selects the object cache flusher from configuration.
package provider

import (
	"context"

	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache/redis"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
)

// New returns a Redis flusher when an address is configured, otherwise cache.Noop.
func New(cfg config.CacheConfig) cache.Flusher {
	if cfg.RedisAddr == "" {
		return cache.Noop{}
	}
	return redis.NewFlusher(cfg)
}

func provide(lc fx.Lifecycle, cfg config.CacheConfig) cache.Flusher {
	f := New(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return f.Close()
		},
	})
	return f
}

// Module provides cache.Flusher.
var Module = fx.Options(
	fx.Provide(provide),
)
