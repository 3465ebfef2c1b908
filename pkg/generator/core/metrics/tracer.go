package metrics

import (
	"context"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// Tracer is an abstract interface for distributed tracing.
type Tracer interface {
	// StartChunkSpan starts a span for one chunk call.
	//
	// Returns: a context with the new span set, and a function that ends it.
	StartChunkSpan(ctx context.Context, req model.GenerationRequest) (context.Context, func())

	// StartSpan starts a span for a named operation (deletion, maintenance, download).
	StartSpan(ctx context.Context, name string) (context.Context, func())

	// RecordError records an error in the current span.
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records an event in the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
