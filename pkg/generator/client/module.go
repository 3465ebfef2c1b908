package client

import (
	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/engine/dump"
	"github.com/tigerroll/wpgen/pkg/generator/engine/maintenance"
)

// Module provides the Loop over the in-process engines. A Sink must be supplied.
var Module = fx.Options(
	fx.Provide(
		func(e *chunk.Engine) Chunks { return e },
		func(s *maintenance.Service) Maintenance { return s },
		func(e *deletion.Engine) Deleter { return e },
		func(w *dump.Writer) Dumper { return w },
		NewLoop,
	),
)
