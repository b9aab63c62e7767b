package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	selectComponents = `SELECT id, name, version, url, repository_kind FROM components ORDER BY id`

	selectKnownVersions = `SELECT version FROM known_versions WHERE component_id = $1`

	// Concurrent runs may race on the same version: the unique constraint
	// keeps one row and the second insert is a no-op.
	insertKnownVersion = `INSERT INTO known_versions (component_id, version) VALUES ($1, $2)
ON CONFLICT (component_id, version) DO NOTHING`

	selectProjectsWith = `SELECT p.id, p.name FROM projects p
JOIN project_components pc ON pc.project_id = p.id
WHERE pc.component_id = $1
ORDER BY p.id`
)

// PostgresStoreRepository serves components, projects and the known-version
// ledger from PostgreSQL.
type PostgresStoreRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStoreRepository connects to settings.URL and applies pending
// migrations.
func NewPostgresStoreRepository(
	ctx context.Context,
	settings entities.StoreSettings,
) (repositories.StoreRepository, error) {
	pool, err := pgxpool.New(ctx, settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", pingErr)
	}
	if migrateErr := migrate(ctx, pool); migrateErr != nil {
		pool.Close()
		return nil, migrateErr
	}
	return &PostgresStoreRepository{pool: pool}, nil
}

type componentRow struct {
	id      int64
	name    string
	version string
	url     string
	kind    string
}

func (it *PostgresStoreRepository) Components(ctx context.Context) ([]entities.Component, error) {
	rows, err := it.pool.Query(ctx, selectComponents)
	if err != nil {
		return nil, fmt.Errorf("failed to query components: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (componentRow, error) {
		var record componentRow
		scanErr := row.Scan(&record.id, &record.name, &record.version, &record.url, &record.kind)
		return record, scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read components: %w", err)
	}

	components := make([]entities.Component, 0, len(records))
	for _, record := range records {
		current, parseErr := entities.ParseVersion(record.version)
		if parseErr != nil {
			return nil, fmt.Errorf("component %q has an invalid pinned version: %w", record.name, parseErr)
		}
		components = append(components, entities.Component{
			ID:             record.id,
			Name:           record.name,
			CurrentVersion: current,
			Repository: entities.Repository{
				Kind: entities.RepositoryKind(record.kind),
				URL:  record.url,
			},
		})
	}
	return components, nil
}

func (it *PostgresStoreRepository) KnownVersions(
	ctx context.Context,
	component entities.Component,
) ([]entities.Version, error) {
	rows, err := it.pool.Query(ctx, selectKnownVersions, component.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query known versions of %q: %w", component.Name, err)
	}
	raw, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read known versions of %q: %w", component.Name, err)
	}

	versions := make([]entities.Version, 0, len(raw))
	for _, text := range raw {
		version, parseErr := entities.ParseVersion(text)
		if parseErr != nil {
			return nil, fmt.Errorf("component %q has an invalid known version: %w", component.Name, parseErr)
		}
		versions = append(versions, version)
	}
	return versions, nil
}

func (it *PostgresStoreRepository) AddKnownVersion(
	ctx context.Context,
	component entities.Component,
	version entities.Version,
) error {
	if _, err := it.pool.Exec(ctx, insertKnownVersion, component.ID, version.String()); err != nil {
		return fmt.Errorf("failed to record version %s of %q: %w", version, component.Name, err)
	}
	return nil
}

func (it *PostgresStoreRepository) ProjectsWith(ctx context.Context, componentID int64) ([]entities.Project, error) {
	rows, err := it.pool.Query(ctx, selectProjectsWith, componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects of component %d: %w", componentID, err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Project, error) {
		var project entities.Project
		scanErr := row.Scan(&project.ID, &project.Name)
		return project, scanErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read projects of component %d: %w", componentID, err)
	}
	return projects, nil
}

func (it *PostgresStoreRepository) Close() error {
	it.pool.Close()
	return nil
}
