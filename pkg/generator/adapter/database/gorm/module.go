package gorm

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/tigerroll/wpgen/pkg/generator/adapter/database"
	dbconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/database/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/domain/model"
)

// Module provides the MySQL backed database.Store and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(
		func(cfg dbconfig.DatabaseConfig) (*gorm.DB, error) { return Open(cfg) },
		func(gen config.GeneratorConfig) model.Tables { return model.Tables{Prefix: gen.TablePrefix} },
		fx.Annotate(NewStore, fx.As(new(database.Store))),
		func(store database.Store) database.Maintainer { return store },
	),
	fx.Invoke(func(lc fx.Lifecycle, store database.Store) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error { return store.Close() },
		})
	}),
)
