package repositories

import (
	"context"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// ComponentRepository enumerates the tracked components.
type ComponentRepository interface {
	Components(ctx context.Context) ([]entities.Component, error)
}

// LedgerRepository is the append-only set of versions already seen upstream
// for each component. Implementations must be safe for concurrent use and
// must treat a duplicate AddKnownVersion as a no-op.
type LedgerRepository interface {
	KnownVersions(ctx context.Context, component entities.Component) ([]entities.Version, error)
	AddKnownVersion(ctx context.Context, component entities.Component, version entities.Version) error
}

// ProjectRepository resolves the projects owning a component.
type ProjectRepository interface {
	ProjectsWith(ctx context.Context, componentID int64) ([]entities.Project, error)
}

// StoreRepository is a persistent store serving every read and write of a run.
type StoreRepository interface {
	ComponentRepository
	LedgerRepository
	ProjectRepository

	// Close releases the connections or files held by the store.
	Close() error
}
