package metrics_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	coremetrics "github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/infrastructure/metrics"
)

func TestPrometheusRecorder_RecordChunk(t *testing.T) {
	r := metrics.NewPrometheusRecorder()
	ctx := context.Background()

	report := model.ChunkReport{
		Plan:     model.ChunkPlan{Count: 100, Step: 1, Steps: 3, Generated: 100},
		Generate: 1500 * time.Millisecond,
		Store:    500 * time.Millisecond,
	}
	r.RecordChunk(ctx, model.ItemPost, coremetrics.ModeLoad, report)
	r.RecordChunk(ctx, model.ItemPost, coremetrics.ModeLoad, report)
	r.RecordChunkFailure(ctx, model.ItemComment, "storage")
	r.RecordDeletion(ctx, "wp_posts", true)
	r.RecordDuration(ctx, "cache_flush", time.Second, map[string]string{"status": "success"})

	expected := `
# HELP wpgen_items_generated_total Total rows generated.
# TYPE wpgen_items_generated_total counter
wpgen_items_generated_total{item_type="post",mode="load"} 200
`
	require.NoError(t, testutil.GatherAndCompare(r.GetRegistry(), strings.NewReader(expected), "wpgen_items_generated_total"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `wpgen_chunk_failures_total{item_type="comment",kind="storage"} 1`)
	assert.Contains(t, body, `wpgen_deletions_total{result="deleted",table="wp_posts"} 1`)
	assert.Contains(t, body, `wpgen_operation_duration_seconds_count{operation="cache_flush",tags="status=success"} 1`)
}

func TestOpenTelemetryTracer(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	tracer := metrics.NewOpenTelemetryTracer(tp)
	ctx, end := tracer.StartChunkSpan(context.Background(), model.GenerationRequest{ItemType: model.ItemUser, Number: 10, ChunkSize: 5})
	tracer.RecordEvent(ctx, "staged", map[string]interface{}{"rows": 5, "path": "/tmp/x"})
	tracer.RecordError(ctx, "chunk", errors.New("boom"))
	end()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "wpgen.chunk", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 2)
	assert.Equal(t, "staged", spans[0].Events()[0].Name)
}
