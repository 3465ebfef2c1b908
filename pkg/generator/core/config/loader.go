package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/exception"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

const moduleName = "config"

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig      // EmbeddedConfig contains the raw bytes of the configuration file.
	Expander       EnvironmentExpander `optional:"true"`
	EnvFilePath    string              `name:"envFilePath" optional:"true"` // EnvFilePath is the path to the .env file, if any.
}

// loadConfig loads configuration in four layers: defaults, embedded YAML (with ${VAR}
// placeholders expanded), and environment variables named after the yaml path
// (WPGEN_DATABASE_HOST overrides wpgen.database.host).
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig, expander EnvironmentExpander) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else if err := godotenv.Load(); err != nil {
		logger.Debugf(".env file not found or could not be loaded: %v", err)
	}

	if expander == nil {
		expander = NewOsEnvironmentExpander()
	}

	cfg := NewConfig()

	if len(embeddedConfig) > 0 {
		expanded, err := expander.Expand(embeddedConfig)
		if err != nil {
			return nil, exception.NewGeneratorError(moduleName, exception.KindValidation, "failed to expand embedded config", err)
		}
		// yaml.v3 only overwrites keys present in the document, so defaults survive.
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, exception.NewGeneratorError(moduleName, exception.KindValidation, "failed to unmarshal embedded config", err)
		}
	}

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewGeneratorError(moduleName, exception.KindValidation, "failed to load config from environment variables", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, exception.NewGeneratorError(moduleName, exception.KindValidation, "invalid configuration", err)
	}
	return cfg, nil
}

// LoadConfig loads configuration from the embedded file and environment variables.
// It is expected to be called once during application startup.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig, nil)
}

// NewConfigProvider is an Fx provider that loads *Config and applies the log level.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig, params.Expander)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.WPGen.System.Logging.Level)
	logger.Debugf("Log level set to: %s", cfg.WPGen.System.Logging.Level)
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}
	if !tablePrefixPattern.MatchString(cfg.WPGen.Generator.TablePrefix) {
		return fmt.Errorf("table prefix %q may only contain letters, digits and underscores", cfg.WPGen.Generator.TablePrefix)
	}
	if _, err := time.LoadLocation(cfg.WPGen.System.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", cfg.WPGen.System.Timezone, err)
	}
	if cfg.WPGen.Database.Type != "mysql" {
		return fmt.Errorf("unsupported database type %q", cfg.WPGen.Database.Type)
	}
	return nil
}

// loadStructFromEnv recursively loads configuration values into a struct from environment variables.
// It uses the "yaml" tag to determine the environment variable name.
//
// Parameters:
//
//	val: The reflect.Value of the struct to populate.
//	prefix: The prefix for environment variable names (e.g., "WPGEN_DATABASE_").
//
// Returns: An error if any field cannot be set.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField sets the value of a reflect.Value field based on its kind.
// It handles string, int, float, and bool types.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
