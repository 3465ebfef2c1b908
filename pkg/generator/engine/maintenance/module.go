package maintenance

import "go.uber.org/fx"

// Module provides the maintenance Service.
var Module = fx.Options(
	fx.Provide(NewService),
)
