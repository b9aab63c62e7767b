package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	logger "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectMigration = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`
	insertMigration = `INSERT INTO schema_migrations (name) VALUES ($1)`
)

// migrate applies every embedded migration not yet recorded in
// schema_migrations, in file name order, each in its own transaction.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		script, readErr := migrationFiles.ReadFile(path.Join("migrations", name))
		if readErr != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, readErr)
		}

		txErr := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			var applied bool
			if scanErr := tx.QueryRow(ctx, selectMigration, name).Scan(&applied); scanErr != nil {
				return scanErr
			}
			if applied {
				return nil
			}
			if _, execErr := tx.Exec(ctx, string(script)); execErr != nil {
				return execErr
			}
			if _, execErr := tx.Exec(ctx, insertMigration, name); execErr != nil {
				return execErr
			}
			logger.Infof("Applied migration %s", name)
			return nil
		})
		if txErr != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, txErr)
		}
	}

	return nil
}
