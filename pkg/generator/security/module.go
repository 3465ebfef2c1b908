package security

import "go.uber.org/fx"

// Module provides the Guard.
var Module = fx.Options(
	fx.Provide(NewGuard),
)
