package deletion

import "go.uber.org/fx"

// Module provides the deletion Engine.
var Module = fx.Options(
	fx.Provide(NewEngine),
)
