//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

// StubVersionSourceRepository implements repositories.VersionSourceRepository
// with canned tag lists keyed by repository URL.
type StubVersionSourceRepository struct {
	SourceName string

	// --- FetchVersions ---
	Tags   map[string][]string // repository URL -> raw tags
	Errors map[string]error    // repository URL -> failure
	// Block, when set, makes FetchVersions wait for ctx cancellation.
	Block bool

	mu sync.Mutex
	// spy: components that were fetched, in call order
	FetchedComponents []entities.Component
}

var _ repositories.VersionSourceRepository = (*StubVersionSourceRepository)(nil)

// NewStubVersionSourceRepository creates a stub with empty tag lists.
func NewStubVersionSourceRepository() *StubVersionSourceRepository {
	return &StubVersionSourceRepository{
		SourceName: "stub",
		Tags:       make(map[string][]string),
		Errors:     make(map[string]error),
	}
}

// WithTags sets the tags returned for url.
func (s *StubVersionSourceRepository) WithTags(url string, tags ...string) *StubVersionSourceRepository {
	s.Tags[url] = tags
	return s
}

// WithError makes fetching url fail with err.
func (s *StubVersionSourceRepository) WithError(url string, err error) *StubVersionSourceRepository {
	s.Errors[url] = err
	return s
}

func (s *StubVersionSourceRepository) Name() string { return s.SourceName }

func (s *StubVersionSourceRepository) FetchVersions(
	ctx context.Context,
	component entities.Component,
) ([]string, error) {
	s.mu.Lock()
	s.FetchedComponents = append(s.FetchedComponents, component)
	s.mu.Unlock()

	if s.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err, ok := s.Errors[component.Repository.URL]; ok {
		return nil, err
	}
	return s.Tags[component.Repository.URL], nil
}

// FetchCount returns how many times FetchVersions was called.
func (s *StubVersionSourceRepository) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.FetchedComponents)
}

// Factory returns a source factory that always yields this stub.
func (s *StubVersionSourceRepository) Factory() func(entities.SourceSettings) repositories.VersionSourceRepository {
	return func(entities.SourceSettings) repositories.VersionSourceRepository { return s }
}
