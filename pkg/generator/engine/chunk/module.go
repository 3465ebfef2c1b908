package chunk

import "go.uber.org/fx"

// Module provides the chunk Engine with its default clock, randomness and registry.
var Module = fx.Options(
	fx.Provide(func(p Params) *Engine { return NewEngine(p) }),
)
