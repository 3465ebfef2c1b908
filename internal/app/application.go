package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/tigerroll/wpgen/pkg/generator/client"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	coremetrics "github.com/tigerroll/wpgen/pkg/generator/core/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/maintenance"
	"github.com/tigerroll/wpgen/pkg/generator/infrastructure/metrics"
	"github.com/tigerroll/wpgen/pkg/generator/interfaces/http/server"
	"github.com/tigerroll/wpgen/pkg/generator/security"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

func supply(envFilePath string, embeddedConfig config.EmbeddedConfig) fx.Option {
	return fx.Supply(
		embeddedConfig,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
	)
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig) error {
	app := fx.New(
		supply(envFilePath, embeddedConfig),
		CoreModule,
		metrics.Module,
		server.Module,
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Infof("Application is shutting down.")
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}

// Deps are the components a one-shot command works with.
type Deps struct {
	fx.In

	Config      *config.Config
	Loop        *client.Loop
	Engine      *chunk.Engine
	Settings    *settings.Store
	Maintenance *maintenance.Service
	Guard       *security.Guard
}

// Run builds the graph without the HTTP surface, hands it to fn and tears it down.
// Progress messages of the client loop go to sink.
func Run(ctx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig, sink client.Sink, fn func(context.Context, Deps) error) error {
	var deps Deps
	app := fx.New(
		supply(envFilePath, embeddedConfig),
		CoreModule,
		coremetrics.Module,
		client.Module,
		fx.Provide(func() client.Sink { return sink }),
		fx.Invoke(func(d Deps) { deps = d }),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Warnf("Shutdown failed: %v", err)
		}
	}()
	return fn(ctx, deps)
}
