package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	metrics "github.com/tigerroll/wpgen/pkg/generator/core/metrics"
)

// InstrumentationName names the tracer created by OpenTelemetryTracer.
const InstrumentationName = "github.com/tigerroll/wpgen"

// OpenTelemetryTracer is an implementation of metrics.Tracer using OpenTelemetry.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a tracer from provider.
func NewOpenTelemetryTracer(provider trace.TracerProvider) *OpenTelemetryTracer {
	return &OpenTelemetryTracer{tracer: provider.Tracer(InstrumentationName)}
}

// StartChunkSpan implements metrics.Tracer.
func (t *OpenTelemetryTracer) StartChunkSpan(ctx context.Context, req model.GenerationRequest) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "wpgen.chunk", trace.WithAttributes(
		attribute.String("wpgen.item_type", string(req.ItemType)),
		attribute.Int("wpgen.number", req.Number),
		attribute.Int("wpgen.chunk_size", req.ChunkSize),
		attribute.Int("wpgen.index", req.Index),
		attribute.Bool("wpgen.sql", req.SQL),
	))
	return ctx, func() { span.End() }
}

// StartSpan implements metrics.Tracer.
func (t *OpenTelemetryTracer) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}

// RecordError implements metrics.Tracer.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("wpgen.module", module)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent implements metrics.Tracer.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, toAttribute(k, v))
	}
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

func toAttribute(key string, v interface{}) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case bool:
		return attribute.Bool(key, val)
	case float64:
		return attribute.Float64(key, val)
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
