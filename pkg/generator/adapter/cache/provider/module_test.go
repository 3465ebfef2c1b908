package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache/provider"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache/redis"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
)

func TestNew_WithoutAddressIsNoop(t *testing.T) {
	f := provider.New(config.CacheConfig{})
	assert.IsType(t, cache.Noop{}, f)
	assert.NoError(t, f.Flush(context.Background()))
	assert.NoError(t, f.Close())
}

func TestNew_WithAddressIsRedis(t *testing.T) {
	f := provider.New(config.CacheConfig{RedisAddr: "127.0.0.1:1"})
	require.IsType(t, &redis.Flusher{}, f)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := f.Flush(ctx)
	assert.ErrorIs(t, err, exception.ErrStorage)
	assert.NoError(t, f.Close())
}
