package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/fitquest/backend/internal/config"
)

// versionTable is where tern records the applied schema version.
const versionTable = "fitquest_schema_version"

// migrationFiles holds the numbered tern SQL files compiled into the binary.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending embedded migration on a dedicated
// connection.
//
// Behavior:
//   - Connect with a single pgx connection, not the pool
//   - Build a tern migrator over the embedded files
//   - Log each migration as it starts
//   - Skip when the stored version already matches the newest file
//   - Otherwise migrate to latest and log the from and to versions
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	migrator, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}

	migrator.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Info().
			Int32("sequence", sequence).
			Str("migration", name).
			Str("direction", direction).
			Msg("applying migration")
	}

	current, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	latest := int32(len(migrator.Migrations))
	if current == latest {
		logger.Info().Int32("version", current).Msg("database schema up to date")
		return nil
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate from version %d: %w", current, err)
	}

	logger.Info().
		Int32("from", current).
		Int32("to", latest).
		Msg("database schema migrated")

	return nil
}

// newMigrator creates the version table if needed and loads the embedded
// migrations in sequence order.
func newMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	migrator, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	files, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	if err := migrator.LoadMigrations(files); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return migrator, nil
}
