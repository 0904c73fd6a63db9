// {{RIPER-5-Enhanced:
//   Action: "Modified"
//   Task_ID: "Config Module Implementation"
//   Timestamp: "2025-11-27T12:40:00Z"
//   Authoring_Role: "LD"
//   Analysis_Performed: "Collected service settings from environment and optional .env file"
//   Principle_Applied: "Aether-Engineering-SOLID-S, DRY"
//   Quality_Check: "Declarative validation of every setting before startup"
// }}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config represents the application configuration
type Config struct {
	Port string `validate:"required,numeric"`

	// Storage
	DBType        string `validate:"oneof=sqlite mongodb badger memory"`
	SQLitePath    string `validate:"required_if=DBType sqlite"`
	MongoHost     string `validate:"required_if=DBType mongodb"`
	MongoDatabase string `validate:"required_if=DBType mongodb"`
	BadgerPath    string

	// Behaviour
	LogLevel       string `validate:"oneof=trace debug info warn warning error fatal panic"`
	StrictFilters  bool
	MetricsEnabled bool
}

var validate = validator.New()

// Load reads the optional .env file at envFile, then builds Config from the environment
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("could not load %s: %v (using process environment and defaults)", envFile, err)
		}
	}

	cfg := &Config{
		Port:          GetEnv("PORT", "5556"),
		DBType:        strings.ToLower(GetEnv("DB_TYPE", "sqlite")),
		SQLitePath:    GetEnv("SQLITE_PATH", "data/strings.db"),
		MongoHost:     GetEnv("MONGO_HOST", "mongodb://localhost:27017/"),
		MongoDatabase: GetEnv("MONGO_DATABASE", "string_analyzer"),
		BadgerPath:    GetEnv("BADGER_PATH", "data/badger"),
		LogLevel:      strings.ToLower(GetEnv("LOG_LEVEL", "info")),
	}

	var err error
	if cfg.StrictFilters, err = GetEnvBool("STRICT_FILTERS", false); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = GetEnvBool("METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ConnectionString returns the backend-specific location for the configured database
func (cfg *Config) ConnectionString() string {
	switch cfg.DBType {
	case "mongodb":
		return cfg.MongoHost
	case "badger":
		return cfg.BadgerPath
	case "memory":
		return ""
	default:
		return cfg.SQLitePath
	}
}

// GetEnv retrieves environment variable or returns default value
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool parses a boolean environment variable, falling back to defaultValue when unset
func GetEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
