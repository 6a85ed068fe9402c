// Package config manages environment variables.
//
// It reads variables from the `.env` file (if present) and the process
// environment, loads them into structured Go types, fills the defaults the
// service ships with, and validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every variable read by LoadConfig must carry.
//
// Nested keys use "." after the prefix, e.g.
//
//	TRANSPORTE_OPINA_DATABASE.HOST -> database.host -> Config.Database.Host
const EnvPrefix = "TRANSPORTE_OPINA_"

// ServiceName is the name reported to logs, traces and metrics.
const ServiceName = "transporte-opina"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. DefaultConfig fills it,
// so environment keys only override individual observability fields.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the number of requests per second a single client IP may
	// issue. Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`

	// MaxOpenConns bounds the pool. Callers beyond the bound wait for a
	// connection to be released.
	MaxOpenConns int `koanf:"max_open_conns" validate:"required,min=1"`

	// ConnMaxLifetime and ConnMaxIdleTime are seconds.
	ConnMaxLifetime int `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int `koanf:"conn_max_idle_time" validate:"min=0"`

	// ConnectTimeout bounds how long establishing one connection may take.
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"min=1s"`

	// AutoMigrate applies the embedded schema at startup.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// DefaultConfig returns the configuration used for every key that the
// environment does not set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:               "8800",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			ConnMaxLifetime: 3600,
			ConnMaxIdleTime: 300,
			ConnectTimeout:  20 * time.Second,
			AutoMigrate:     true,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and applies observability defaults.
//
// Behavior summary:
//   - Loads env vars with prefix TRANSPORTE_OPINA_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into a pre-filled Config, so unset keys keep their defaults
//   - Validates required config blocks/fields
//   - Forces observability service name + environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// TRANSPORTE_OPINA_SERVER.PORT -> "server.port"
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// koanf decodes with mapstructure; keys that are absent leave the
	// pre-filled defaults untouched.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
