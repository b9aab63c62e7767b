//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/packager/internal/domain/commands"
	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

// StubFindOutdatedCommand is a stub implementation of commands.FindOutdated.
type StubFindOutdatedCommand struct {
	Outdated   []entities.OutdatedComponent
	ExecuteErr error
	// Record, when set, is called with the store the command received.
	Record func(ctx context.Context, store repositories.StoreRepository) error

	ExecuteCallCount int
	LastStore        repositories.StoreRepository
	LastOpts         commands.FindOutdatedOptions
}

var _ commands.FindOutdated = (*StubFindOutdatedCommand)(nil)

func (s *StubFindOutdatedCommand) Execute(
	ctx context.Context,
	store repositories.StoreRepository,
	opts commands.FindOutdatedOptions,
) ([]entities.OutdatedComponent, error) {
	s.ExecuteCallCount++
	s.LastStore = store
	s.LastOpts = opts
	if s.Record != nil {
		if err := s.Record(ctx, store); err != nil {
			return nil, err
		}
	}
	return s.Outdated, s.ExecuteErr
}
