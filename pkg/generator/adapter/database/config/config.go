// Package config holds connection settings for the relational store.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	MaxOpenConns           int `yaml:"max_open_conns"`            // Maximum number of open connections.
	MaxIdleConns           int `yaml:"max_idle_conns"`            // Maximum number of idle connections.
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"` // Maximum connection lifetime in minutes.
}

// DatabaseConfig describes the content database the generator writes into.
type DatabaseConfig struct {
	Type     string     `yaml:"type"`     // Database type. Only "mysql" is supported.
	Host     string     `yaml:"host"`     // Database host address.
	Port     int        `yaml:"port"`     // Database port number.
	Database string     `yaml:"database"` // Database name.
	User     string     `yaml:"user"`     // Database user.
	Password string     `yaml:"password"` // Database password.
	Charset  string     `yaml:"charset"`  // Connection character set.
	LogLevel string     `yaml:"log_level"`
	Pool     PoolConfig `yaml:"pool"` // Connection pool settings.
}

// DSN renders the go-sql-driver connection string.
// Dates are read as raw strings so that the zero datetime sentinel survives round trips.
func (c DatabaseConfig) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	dsn.DBName = c.Database
	dsn.ParseTime = false
	dsn.Loc = time.UTC
	dsn.MultiStatements = false
	if c.Charset != "" {
		dsn.Params = map[string]string{"charset": c.Charset}
	}
	return dsn.FormatDSN()
}
