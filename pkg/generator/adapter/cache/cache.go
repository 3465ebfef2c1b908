// Package cache flushes the persistent object cache that sits in front of the content
// database, so that rows written behind its back become visible.
package cache

import (
	"context"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// Flusher empties an object cache.
type Flusher interface {
	// Flush empties the cache. It is idempotent.
	Flush(ctx context.Context) error
	Close() error
}

// Noop is used when no persistent object cache is configured.
type Noop struct{}

var _ Flusher = Noop{}

// Flush logs and returns nil.
func (Noop) Flush(ctx context.Context) error {
	logger.Debugf("No persistent object cache configured; nothing to flush.")
	return nil
}

func (Noop) Close() error { return nil }
