// Package app assembles the wpgen object graph with uber-fx.
package app

import (
	"go.uber.org/fx"

	cacheprovider "github.com/tigerroll/wpgen/pkg/generator/adapter/cache/provider"
	gormadapter "github.com/tigerroll/wpgen/pkg/generator/adapter/database/gorm"
	"github.com/tigerroll/wpgen/pkg/generator/adapter/storage/local"
	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/core/settings"
	"github.com/tigerroll/wpgen/pkg/generator/engine/chunk"
	"github.com/tigerroll/wpgen/pkg/generator/engine/deletion"
	"github.com/tigerroll/wpgen/pkg/generator/engine/dump"
	"github.com/tigerroll/wpgen/pkg/generator/engine/maintenance"
	boltrepo "github.com/tigerroll/wpgen/pkg/generator/infrastructure/repository/bolt"
	"github.com/tigerroll/wpgen/pkg/generator/security"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// CoreModule provides configuration, adapters, state and the engines. Telemetry and the
// outer surface are added by the caller.
var CoreModule = fx.Options(
	logger.Module,
	config.Module,

	gormadapter.Module,
	local.Module,
	boltrepo.Module,
	cacheprovider.Module,

	settings.Module,
	security.Module,
	chunk.Module,
	deletion.Module,
	dump.Module,
	maintenance.Module,
)
