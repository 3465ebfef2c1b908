package metrics

import (
	"context"
	"time"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// NoOpMetricRecorder is a MetricRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

func (r *NoOpMetricRecorder) RecordChunk(ctx context.Context, itemType model.ItemType, mode Mode, report model.ChunkReport) {
}
func (r *NoOpMetricRecorder) RecordChunkFailure(ctx context.Context, itemType model.ItemType, kind string) {
}
func (r *NoOpMetricRecorder) RecordDeletion(ctx context.Context, table string, deleted bool) {}
func (r *NoOpMetricRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// --- NoOpTracer ---

// NoOpTracer is a Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new instance of NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

func (t *NoOpTracer) StartChunkSpan(ctx context.Context, req model.GenerationRequest) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) RecordError(ctx context.Context, module string, err error) {}

func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
