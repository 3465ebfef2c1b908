// Package maintenance holds the follow-up operations run after generation.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/cache"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	"github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const (
	MessageCommentCounts = "Comment counts updated."
	MessageCacheFlushed  = "Cache flushed."
)

// Params are the Service dependencies.
type Params struct {
	fx.In

	Store    database.Maintainer
	Cache    cache.Flusher
	Recorder metrics.MetricRecorder
}

// Service runs the maintenance operations. Both are idempotent.
type Service struct {
	store    database.Maintainer
	cache    cache.Flusher
	recorder metrics.MetricRecorder
}

// NewService creates a Service.
func NewService(p Params) *Service {
	return &Service{store: p.Store, cache: p.Cache, recorder: p.Recorder}
}

// UpdateCommentCounts recomputes posts.comment_count from the comments table.
func (s *Service) UpdateCommentCounts(ctx context.Context) (string, error) {
	return s.timed(ctx, "update_comment_counts", MessageCommentCounts, s.store.UpdateCommentCounts)
}

// CacheFlush empties the persistent object cache.
func (s *Service) CacheFlush(ctx context.Context) (string, error) {
	return s.timed(ctx, "cache_flush", MessageCacheFlushed, s.cache.Flush)
}

func (s *Service) timed(ctx context.Context, name, message string, op func(context.Context) error) (string, error) {
	start := time.Now()
	err := op(ctx)
	status := "success"
	if err != nil {
		status = "failure"
	}
	s.recorder.RecordDuration(ctx, name, time.Since(start), map[string]string{"status": status})
	if err != nil {
		logger.Errorf("%s failed: %v", name, err)
		return "", err
	}
	logger.Infof("%s", message)
	return message, nil
}
