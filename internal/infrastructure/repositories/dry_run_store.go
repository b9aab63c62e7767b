package repositories

import (
	"context"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packager/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packager/internal/domain/repositories"
)

// DryRunStore reads through to a real store but keeps recorded versions in
// memory, so a dry run reports exactly what a real run would without
// growing the persistent ledger.
type DryRunStore struct {
	domainRepos.StoreRepository

	mu       sync.RWMutex
	recorded map[int64][]entities.Version
}

// NewDryRunStore wraps store.
func NewDryRunStore(store domainRepos.StoreRepository) *DryRunStore {
	return &DryRunStore{
		StoreRepository: store,
		recorded:        make(map[int64][]entities.Version),
	}
}

func (it *DryRunStore) KnownVersions(
	ctx context.Context,
	component entities.Component,
) ([]entities.Version, error) {
	versions, err := it.StoreRepository.KnownVersions(ctx, component)
	if err != nil {
		return nil, err
	}

	it.mu.RLock()
	defer it.mu.RUnlock()
	return append(versions, it.recorded[component.ID]...), nil
}

func (it *DryRunStore) AddKnownVersion(
	_ context.Context,
	component entities.Component,
	version entities.Version,
) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	for _, known := range it.recorded[component.ID] {
		if known.Equal(version) {
			return nil
		}
	}
	logger.Debugf("[dry-run] Would record version %s of %s", version, component.Name)
	it.recorded[component.ID] = append(it.recorded[component.ID], version)
	return nil
}

// Recorded returns the versions that a real run would have persisted.
func (it *DryRunStore) Recorded(componentID int64) []entities.Version {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return append([]entities.Version(nil), it.recorded[componentID]...)
}
