package repositories

import (
	"fmt"

	"github.com/rios0rios0/packager/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packager/internal/domain/repositories"
)

// VersionSourceFactory creates a VersionSourceRepository from its settings.
type VersionSourceFactory func(settings entities.SourceSettings) domainRepos.VersionSourceRepository

// VersionSourceRegistry maps repository kinds to version source factories.
type VersionSourceRegistry struct {
	sources map[entities.RepositoryKind]VersionSourceFactory
}

// NewVersionSourceRegistry creates an empty version source registry.
func NewVersionSourceRegistry() *VersionSourceRegistry {
	return &VersionSourceRegistry{
		sources: make(map[entities.RepositoryKind]VersionSourceFactory),
	}
}

// Register adds a version source factory under the given kind (e.g. "git").
func (r *VersionSourceRegistry) Register(kind entities.RepositoryKind, factory VersionSourceFactory) {
	r.sources[kind] = factory
}

// Get returns a configured version source for the given kind.
func (r *VersionSourceRegistry) Get(
	kind entities.RepositoryKind,
	settings entities.SourceSettings,
) (domainRepos.VersionSourceRepository, error) {
	factory, ok := r.sources[kind]
	if !ok {
		return nil, fmt.Errorf("unknown repository kind: %q", kind)
	}
	return factory(settings), nil
}

// Kinds returns the list of registered repository kinds.
func (r *VersionSourceRegistry) Kinds() []entities.RepositoryKind {
	kinds := make([]entities.RepositoryKind, 0, len(r.sources))
	for kind := range r.sources {
		kinds = append(kinds, kind)
	}
	return kinds
}
