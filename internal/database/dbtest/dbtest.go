// Package dbtest starts a throwaway PostgreSQL for integration tests.
//
// Tests using it are skipped unless TEST_INTEGRATION is set.
package dbtest

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/henriqued25/transporte-opina/internal/config"
	"github.com/henriqued25/transporte-opina/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image    = "docker.io/postgres:17-alpine"
	name     = "transporte_opina_test"
	user     = "opina"
	password = "test-password"
)

// Config starts a PostgreSQL container and returns a config pointing at it.
func Config(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase(name),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "starting postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	portNumber, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Database.Host = host
	cfg.Database.Port = portNumber
	cfg.Database.Name = name
	cfg.Database.User = user
	cfg.Database.Password = password

	return cfg
}

// Database starts a container, applies the schema and returns a connected
// Database that is closed when the test ends.
func Database(t *testing.T) *database.Database {
	t.Helper()

	cfg := Config(t)
	logger := zerolog.New(zerolog.NewTestWriter(t))

	require.NoError(t, database.Migrate(context.Background(), &logger, cfg))

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
