package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	metrics "github.com/tigerroll/wpgen/pkg/generator/core/metrics"
)

func provideTracerProvider(lc fx.Lifecycle, cfg config.TelemetryConfig) (*sdktrace.TracerProvider, error) {
	tp, err := NewTracerProvider(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}

func provideRecorder(cfg config.TelemetryConfig) (metrics.MetricRecorder, prometheus.Gatherer) {
	if !cfg.MetricsEnabled {
		return metrics.NewNoOpMetricRecorder(), prometheus.NewRegistry()
	}
	r := NewPrometheusRecorder()
	return r, r.GetRegistry()
}

// Module provides the Prometheus recorder, its gatherer for /metrics and an
// OpenTelemetry tracer backed by the SDK provider.
var Module = fx.Options(
	fx.Provide(
		provideTracerProvider,
		provideRecorder,
		func(tp *sdktrace.TracerProvider) trace.TracerProvider { return tp },
		fx.Annotate(
			NewOpenTelemetryTracer,
			fx.As(new(metrics.Tracer)),
		),
	),
)
