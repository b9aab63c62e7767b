//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"slices"
	"sync"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

// InMemoryStoreRepository implements repositories.StoreRepository on maps.
// Configure the error fields to simulate store failures.
type InMemoryStoreRepository struct {
	mu sync.Mutex

	ComponentList []entities.Component
	Known         map[int64][]entities.Version
	Projects      map[int64][]entities.Project

	// --- injected failures ---
	ComponentsErr    error
	KnownVersionsErr error
	AddErr           error
	ProjectsErr      error
	CloseErr         error

	// spy: every successful AddKnownVersion call
	Added       []AddedVersion
	CloseCalled bool
}

// AddedVersion records a single AddKnownVersion invocation.
type AddedVersion struct {
	ComponentID int64
	Version     string
}

var _ repositories.StoreRepository = (*InMemoryStoreRepository)(nil)

// NewInMemoryStoreRepository creates a store holding the given components.
func NewInMemoryStoreRepository(components ...entities.Component) *InMemoryStoreRepository {
	return &InMemoryStoreRepository{
		ComponentList: components,
		Known:         make(map[int64][]entities.Version),
		Projects:      make(map[int64][]entities.Project),
	}
}

// WithKnown seeds the ledger of componentID with the given versions.
func (s *InMemoryStoreRepository) WithKnown(componentID int64, versions ...string) *InMemoryStoreRepository {
	for _, text := range versions {
		s.Known[componentID] = append(s.Known[componentID], entities.MustParseVersion(text))
	}
	return s
}

// WithProjects sets the projects that contain componentID.
func (s *InMemoryStoreRepository) WithProjects(componentID int64, names ...string) *InMemoryStoreRepository {
	for _, name := range names {
		s.Projects[componentID] = append(s.Projects[componentID], entities.Project{
			ID:   int64(len(s.Projects[componentID]) + 1),
			Name: name,
		})
	}
	return s
}

func (s *InMemoryStoreRepository) Components(_ context.Context) ([]entities.Component, error) {
	if s.ComponentsErr != nil {
		return nil, s.ComponentsErr
	}
	return slices.Clone(s.ComponentList), nil
}

func (s *InMemoryStoreRepository) KnownVersions(
	_ context.Context,
	component entities.Component,
) ([]entities.Version, error) {
	if s.KnownVersionsErr != nil {
		return nil, s.KnownVersionsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.Known[component.ID]), nil
}

func (s *InMemoryStoreRepository) AddKnownVersion(
	_ context.Context,
	component entities.Component,
	version entities.Version,
) error {
	if s.AddErr != nil {
		return s.AddErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.Known[component.ID], version.Equal) {
		return nil
	}
	s.Known[component.ID] = append(s.Known[component.ID], version)
	s.Added = append(s.Added, AddedVersion{ComponentID: component.ID, Version: version.String()})
	return nil
}

func (s *InMemoryStoreRepository) ProjectsWith(_ context.Context, componentID int64) ([]entities.Project, error) {
	if s.ProjectsErr != nil {
		return nil, s.ProjectsErr
	}
	return slices.Clone(s.Projects[componentID]), nil
}

func (s *InMemoryStoreRepository) Close() error {
	s.CloseCalled = true
	return s.CloseErr
}

// KnownStrings returns the ledger of componentID as text, in insertion order.
func (s *InMemoryStoreRepository) KnownStrings(componentID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, 0, len(s.Known[componentID]))
	for _, version := range s.Known[componentID] {
		texts = append(texts, version.String())
	}
	return texts
}

// Factory returns a store factory that always yields this store.
func (s *InMemoryStoreRepository) Factory() func(context.Context, entities.StoreSettings) (repositories.StoreRepository, error) {
	return func(context.Context, entities.StoreSettings) (repositories.StoreRepository, error) { return s, nil }
}
