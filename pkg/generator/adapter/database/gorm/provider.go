// Package gorm implements the database.Store port for MySQL with GORM.
package gorm

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	dbconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/database/config"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// Open establishes a GORM connection from cfg and applies the pool settings.
func Open(cfg dbconfig.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Type != "mysql" {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:                 NewGormLogger(cfg.LogLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	if cfg.Pool.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Pool.ConnMaxLifetimeMinutes) * time.Minute)
	}

	logger.Infof("Established DB connection: %s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
	return db, nil
}
