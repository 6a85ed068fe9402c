package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPrefix+"DATABASE.USER", "opina")
	t.Setenv(EnvPrefix+"DATABASE.NAME", "transporte_opina")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8800", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 20*time.Second, cfg.Database.ConnectTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "development", cfg.Primary.Env)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"PRIMARY.ENV", "production")
	t.Setenv(EnvPrefix+"SERVER.PORT", "9000")
	t.Setenv(EnvPrefix+"DATABASE.HOST", "db.internal")
	t.Setenv(EnvPrefix+"DATABASE.PORT", "6543")
	t.Setenv(EnvPrefix+"DATABASE.PASSWORD", "s3cr3t")
	t.Setenv(EnvPrefix+"DATABASE.CONNECT_TIMEOUT", "5s")
	t.Setenv(EnvPrefix+"OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cr3t", cfg.Database.Password)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)

	// Fields not overridden keep their defaults inside the observability block.
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_MissingDatabaseName(t *testing.T) {
	t.Setenv(EnvPrefix+"DATABASE.USER", "opina")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "unknown level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "unknown format", mutate: func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
		{name: "empty service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Logging.Level = "error"
	assert.Equal(t, "error", c.GetLogLevel())
}
