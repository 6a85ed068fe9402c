package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/henriqued25/transporte-opina/internal/config"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The schema ships inside the binary.
//
//go:embed migrations/*.sql
var migrations embed.FS

// SchemaVersionTable is where tern records the applied schema version.
const SchemaVersionTable = "schema_version"

// Migrate applies the embedded schema using jackc/tern.
//
// Behavior:
//   - Connect using pgx (single connection, not a pool)
//   - Create tern migrator and load embedded migrations
//   - Run migrations to latest
//   - Log whether it was already up-to-date or migrated
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	connConfig, err := pgx.ParseConfig(DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("parsing migration connection config: %w", err)
	}
	connConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, SchemaVersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	// tern expects an fs.FS pointing at the directory containing migration files.
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
