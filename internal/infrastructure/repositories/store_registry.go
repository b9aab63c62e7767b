package repositories

import (
	"context"
	"fmt"

	"github.com/rios0rios0/packager/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packager/internal/domain/repositories"
)

// StoreFactory opens a StoreRepository from its settings.
type StoreFactory func(ctx context.Context, settings entities.StoreSettings) (domainRepos.StoreRepository, error)

// StoreRegistry maps store drivers to store factories.
type StoreRegistry struct {
	stores map[string]StoreFactory
}

// NewStoreRegistry creates an empty store registry.
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{
		stores: make(map[string]StoreFactory),
	}
}

// Register adds a store factory under the given driver name (e.g. "postgres").
func (r *StoreRegistry) Register(driver string, factory StoreFactory) {
	r.stores[driver] = factory
}

// Open returns an opened store for the configured driver.
func (r *StoreRegistry) Open(
	ctx context.Context,
	settings entities.StoreSettings,
) (domainRepos.StoreRepository, error) {
	factory, ok := r.stores[settings.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: unknown store driver %q", entities.ErrStore, settings.Driver)
	}
	store, err := factory(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrStore, err)
	}
	return store, nil
}
