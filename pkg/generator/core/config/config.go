// Package config provides the structures and loader for wpgen configuration.
package config

import (
	"time"

	dbconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/database/config"
	storageconfig "github.com/tigerroll/wpgen/pkg/generator/adapter/storage/config"
)

// EmbeddedConfig holds the content of the configuration file, typically passed from main.go.
type EmbeddedConfig []byte

// YearInSeconds is the default span generated dates are spread over.
const YearInSeconds = 365 * 24 * 60 * 60

// Config is the root configuration object.
type Config struct {
	WPGen WPGenConfig `yaml:"wpgen"`
}

// WPGenConfig groups all settings.
type WPGenConfig struct {
	System    SystemConfig                `yaml:"system"`
	Database  dbconfig.DatabaseConfig     `yaml:"database"`
	Generator GeneratorConfig             `yaml:"generator"`
	Storage   storageconfig.StorageConfig `yaml:"storage"`
	State     StateConfig                 `yaml:"state"`
	Cache     CacheConfig                 `yaml:"cache"`
	Security  SecurityConfig              `yaml:"security"`
	Server    ServerConfig                `yaml:"server"`
	Telemetry TelemetryConfig             `yaml:"telemetry"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds process wide settings.
type SystemConfig struct {
	// Timezone is the site timezone used for local post and comment dates (IANA name).
	Timezone string        `yaml:"timezone"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Location resolves Timezone, falling back to UTC for empty or unknown names.
func (s SystemConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GeneratorConfig holds the knobs of the item generators.
type GeneratorConfig struct {
	// TablePrefix is prepended to every content table name (e.g. "wp_").
	TablePrefix string `yaml:"table_prefix"`
	// InitialTimeShift is how far back, in seconds, the first generated date lies.
	InitialTimeShift int           `yaml:"initial_time_shift" validate:"gte=0"`
	Post             PostConfig    `yaml:"post"`
	Comment          CommentConfig `yaml:"comment"`
	User             UserConfig    `yaml:"user"`
}

// PostConfig tunes post and page generation.
type PostConfig struct {
	ParagraphsInPost int `yaml:"paragraphs_in_post" validate:"gte=1"`
	WordsInTitle     int `yaml:"words_in_title" validate:"gte=1"`
	RandomUsersCount int `yaml:"random_users_count" validate:"gte=1"`
}

// CommentConfig tunes comment generation.
type CommentConfig struct {
	RandomPostsCount   int `yaml:"random_posts_count" validate:"gte=1"`
	RandomIPsCount     int `yaml:"random_ips_count" validate:"gte=1"`
	RandomUsersCount   int `yaml:"random_users_count" validate:"gte=1"`
	MaxNestingLevel    int `yaml:"max_nesting_level" validate:"gte=0"`
	NestingPercentage  int `yaml:"nesting_percentage" validate:"gte=0,lte=100"`
	MaxSentences       int `yaml:"max_sentences" validate:"gte=1"`
	LoggedInPercentage int `yaml:"logged_in_percentage" validate:"gte=0,lte=100"`
}

// UserConfig tunes user generation.
type UserConfig struct {
	EmailDomain string `yaml:"email_domain" validate:"required,hostname"`
	// BcryptCost is the cost used to hash the password shared by generated users.
	BcryptCost int `yaml:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// StateConfig locates the bbolt file holding settings and staged SQL runs.
type StateConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig points at the persistent object cache. An empty address disables flushing.
type CacheConfig struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// SecurityConfig configures anti-forgery tokens.
type SecurityConfig struct {
	TokenSecret     string `yaml:"token_secret"`
	TokenTTLSeconds int    `yaml:"token_ttl_seconds"`
	Issuer          string `yaml:"issuer"`
}

// ServerConfig configures the HTTP interface.
type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	Mode                string `yaml:"mode"`
}

// TelemetryConfig configures metrics and tracing.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	// OTLPEndpoint is the OTLP/HTTP collector address. Empty disables span export.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		WPGen: WPGenConfig{
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Database: dbconfig.DatabaseConfig{
				Type:     "mysql",
				Host:     "127.0.0.1",
				Port:     3306,
				Database: "wordpress",
				User:     "root",
				Charset:  "utf8mb4",
				LogLevel: "SILENT",
				Pool: dbconfig.PoolConfig{
					MaxOpenConns:           4,
					MaxIdleConns:           2,
					ConnMaxLifetimeMinutes: 5,
				},
			},
			Generator: GeneratorConfig{
				TablePrefix:      "wp_",
				InitialTimeShift: YearInSeconds,
				Post: PostConfig{
					ParagraphsInPost: 12,
					WordsInTitle:     5,
					RandomUsersCount: 1000,
				},
				Comment: CommentConfig{
					RandomPostsCount:   1000,
					RandomIPsCount:     1000,
					RandomUsersCount:   1000,
					MaxNestingLevel:    2,
					NestingPercentage:  50,
					MaxSentences:       30,
					LoggedInPercentage: 10,
				},
				User: UserConfig{
					EmailDomain: "wpgen.local",
					BcryptCost:  10,
				},
			},
			Storage: storageconfig.StorageConfig{Type: "local"},
			State:   StateConfig{Path: "wpgen.db"},
			Security: SecurityConfig{
				TokenTTLSeconds: 24 * 60 * 60,
				Issuer:          "wpgen",
			},
			Server: ServerConfig{
				Addr:                ":8080",
				ReadTimeoutSeconds:  30,
				WriteTimeoutSeconds: 600,
				Mode:                "release",
			},
			Telemetry: TelemetryConfig{
				ServiceName:    "wpgen",
				MetricsEnabled: true,
			},
		},
	}
}
