package settings

import "go.uber.org/fx"

// Module provides the settings Store.
var Module = fx.Options(
	fx.Provide(NewStore),
)
