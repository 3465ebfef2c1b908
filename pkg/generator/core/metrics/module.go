package metrics

import (
	"go.uber.org/fx"
)

// Module provides the no-op recorder and tracer. Applications that want real telemetry
// use the infrastructure module instead.
var Module = fx.Options(
	fx.Provide(
		NewNoOpMetricRecorder,
		NewNoOpTracer,
	),
)
