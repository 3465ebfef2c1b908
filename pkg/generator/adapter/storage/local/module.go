package local

import (
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/storage"
)

// Module provides the local Adapter as storage.Stager.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewAdapter,
		fx.As(new(storage.Stager)),
	)),
)
