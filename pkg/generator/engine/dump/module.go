package dump

import "go.uber.org/fx"

// Module provides the dump Writer.
var Module = fx.Options(
	fx.Provide(NewWriter),
)
