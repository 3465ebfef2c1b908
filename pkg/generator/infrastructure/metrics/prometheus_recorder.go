package metrics

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
	metrics "github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of metrics.MetricRecorder.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	chunkDurationSeconds *prometheus.HistogramVec
	itemsGenerated       *prometheus.CounterVec
	chunkFailures        *prometheus.CounterVec
	deletions            *prometheus.CounterVec
	operationSeconds     *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder on a fresh registry that also carries the Go
// runtime and process collectors.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		chunkDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wpgen_chunk_duration_seconds",
			Help:    "Time spent per chunk phase.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"item_type", "mode", "phase"}), // phase: generate, store
		itemsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wpgen_items_generated_total",
			Help: "Total rows generated.",
		}, []string{"item_type", "mode"}),
		chunkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wpgen_chunk_failures_total",
			Help: "Total failed chunks by error kind.",
		}, []string{"item_type", "kind"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wpgen_deletions_total",
			Help: "Table swaps by outcome.",
		}, []string{"table", "result"}), // result: deleted, skipped
		operationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wpgen_operation_duration_seconds",
			Help:    "Duration of named operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "tags"}),
	}

	registry.MustRegister(r.chunkDurationSeconds)
	registry.MustRegister(r.itemsGenerated)
	registry.MustRegister(r.chunkFailures)
	registry.MustRegister(r.deletions)
	registry.MustRegister(r.operationSeconds)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordChunk implements metrics.MetricRecorder.
func (r *PrometheusRecorder) RecordChunk(ctx context.Context, itemType model.ItemType, mode metrics.Mode, report model.ChunkReport) {
	r.itemsGenerated.WithLabelValues(string(itemType), string(mode)).Add(float64(report.Plan.Count))
	r.chunkDurationSeconds.WithLabelValues(string(itemType), string(mode), "generate").Observe(report.Generate.Seconds())
	r.chunkDurationSeconds.WithLabelValues(string(itemType), string(mode), "store").Observe(report.Store.Seconds())
	logger.Debugf("Metrics: chunk %d/%d of %s recorded (%d rows).", report.Plan.Step, report.Plan.Steps, itemType, report.Plan.Count)
}

// RecordChunkFailure implements metrics.MetricRecorder.
func (r *PrometheusRecorder) RecordChunkFailure(ctx context.Context, itemType model.ItemType, kind string) {
	r.chunkFailures.WithLabelValues(string(itemType), kind).Inc()
}

// RecordDeletion implements metrics.MetricRecorder.
func (r *PrometheusRecorder) RecordDeletion(ctx context.Context, table string, deleted bool) {
	result := "skipped"
	if deleted {
		result = "deleted"
	}
	r.deletions.WithLabelValues(table, result).Inc()
}

// RecordDuration implements metrics.MetricRecorder. Tags are folded into a single
// sorted "k=v,k=v" label to keep the label set fixed.
func (r *PrometheusRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.operationSeconds.WithLabelValues(name, foldTags(tags)).Observe(duration.Seconds())
}

func foldTags(tags map[string]string) string {
	pairs := make([]string, 0, len(tags))
	for k, v := range tags {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
