package config

import (
	"go.uber.org/fx"

	dbconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/database/config"
	storageconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/storage/config"
)

// Module provides *Config and the narrower views other modules depend on.
var Module = fx.Options(
	fx.Provide(
		func() EnvironmentExpander { return NewOsEnvironmentExpander() },
		NewConfigProvider,
		func(cfg *Config) SystemConfig { return cfg.WPGen.System },
		func(cfg *Config) *LoggingConfig { return &cfg.WPGen.System.Logging },
		func(cfg *Config) dbconfig.DatabaseConfig { return cfg.WPGen.Database },
		func(cfg *Config) storageconfig.StorageConfig { return cfg.WPGen.Storage },
		func(cfg *Config) GeneratorConfig { return cfg.WPGen.Generator },
		func(cfg *Config) SecurityConfig { return cfg.WPGen.Security },
		func(cfg *Config) CacheConfig { return cfg.WPGen.Cache },
		func(cfg *Config) ServerConfig { return cfg.WPGen.Server },
		func(cfg *Config) TelemetryConfig { return cfg.WPGen.Telemetry },
		func(cfg *Config) StateConfig { return cfg.WPGen.State },
	),
)
