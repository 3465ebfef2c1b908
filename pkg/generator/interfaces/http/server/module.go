package server

import (
	"net/http"

	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/engine/dump"
	"github.com/tigerroll/wpgen/pkg/generator/engine/maintenance"
	"github.com/tigerroll/wpgen/pkg/generator/interfaces/http/handler"
)

// Module provides the handler, the gin engine and the started http.Server.
var Module = fx.Options(
	fx.Provide(
		func(e *chunk.Engine) handler.Generator { return e },
		func(w *dump.Writer) handler.Downloader { return w },
		func(s *maintenance.Service) handler.Maintenance { return s },
		func(e *deletion.Engine) handler.Deleter { return e },
		handler.New,
		NewEngine,
		NewServer,
	),
	fx.Invoke(func(*http.Server) {}),
)
