package commands

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/packager/internal/infrastructure/repositories"
)

// FindOutdated is the interface for the outdated-detection engine.
type FindOutdated interface {
	Execute(
		ctx context.Context,
		store repositories.StoreRepository,
		opts FindOutdatedOptions,
	) ([]entities.OutdatedComponent, error)
}

// FindOutdatedOptions holds runtime options for a single detection run.
type FindOutdatedOptions struct {
	Sources       map[string]entities.SourceSettings // credentials per repository kind
	SourceTimeout time.Duration                      // bound on each FetchVersions call, 0 for none
	Concurrency   int                                // components processed at once, <= 1 is sequential
	ComponentName string                             // If set, only process this component (CLI override)
}

// FindOutdatedCommand diffs upstream tags against the known-version ledger
// and reports components whose pinned version was overtaken by a version
// seen for the first time in this run.
type FindOutdatedCommand struct {
	sourceRegistry *infraRepos.VersionSourceRegistry
}

// NewFindOutdatedCommand creates a new FindOutdatedCommand with the given registry.
func NewFindOutdatedCommand(sourceRegistry *infraRepos.VersionSourceRegistry) *FindOutdatedCommand {
	return &FindOutdatedCommand{sourceRegistry: sourceRegistry}
}

// runState is shared by the components of one run.
type runState struct {
	store   repositories.StoreRepository
	opts    FindOutdatedOptions
	sources sync.Map // entities.RepositoryKind -> repositories.VersionSourceRepository

	processed atomic.Int64
	skipped   atomic.Int64
}

// Execute processes every component and returns the reports in component
// order. Source failures skip the component; store failures abort the run.
func (it *FindOutdatedCommand) Execute(
	ctx context.Context,
	store repositories.StoreRepository,
	opts FindOutdatedOptions,
) ([]entities.OutdatedComponent, error) {
	components, err := store.Components(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list components: %w", entities.ErrStore, err)
	}

	if opts.ComponentName != "" {
		components = filterByName(components, opts.ComponentName)
		if len(components) == 0 {
			logger.Warnf("No component named %q", opts.ComponentName)
		}
	}

	state := &runState{store: store, opts: opts}
	reports := make([]*entities.OutdatedComponent, len(components))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(opts.Concurrency, 1))
	for i, component := range components {
		group.Go(func() error {
			report, processErr := it.processComponent(groupCtx, state, component)
			if processErr != nil {
				return processErr
			}
			reports[i] = report
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}

	outdated := make([]entities.OutdatedComponent, 0, len(reports))
	for _, report := range reports {
		if report != nil {
			outdated = append(outdated, *report)
		}
	}

	logger.Infof(
		"Detection complete: %d components processed, %d skipped, %d outdated",
		state.processed.Load(), state.skipped.Load(), len(outdated),
	)
	return outdated, nil
}

// processComponent runs the pipeline for one component. The returned error
// is always a run-aborting one: source failures are logged and yield a nil
// report instead.
func (it *FindOutdatedCommand) processComponent(
	ctx context.Context,
	state *runState,
	component entities.Component,
) (*entities.OutdatedComponent, error) {
	log := logger.WithFields(logger.Fields{
		"component":  component.Name,
		"repository": component.Repository.URL,
	})

	remote, err := it.fetchRemoteVersions(ctx, state, component)
	if err != nil {
		log.Errorf("Skipping component: %v", err)
		state.skipped.Add(1)
		return nil, nil
	}
	state.processed.Add(1)

	known, err := state.store.KnownVersions(ctx, component)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read known versions of %s: %w", entities.ErrStore, component.Name, err)
	}

	unknown := UnknownVersions(remote, known)
	for _, version := range unknown {
		if addErr := state.store.AddKnownVersion(ctx, component, version); addErr != nil {
			return nil, fmt.Errorf("%w: failed to record %s %s: %w", entities.ErrStore, component.Name, version, addErr)
		}
	}
	if len(unknown) > 0 {
		log.Debugf("Recorded %d new versions", len(unknown))
	}

	latest, found := entities.MaxVersion(unknown)
	if !found || !latest.GreaterThan(component.CurrentVersion) {
		return nil, nil
	}

	projects, err := state.store.ProjectsWith(ctx, component.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read projects of %s: %w", entities.ErrStore, component.Name, err)
	}

	log.Infof("Outdated: pinned at %s, %s was released", component.CurrentVersion, latest)
	return &entities.OutdatedComponent{
		Name:           component.Name,
		CurrentVersion: component.CurrentVersion,
		LatestVersion:  latest,
		Projects:       projects,
	}, nil
}

// fetchRemoteVersions asks the component's version source for its tags and
// keeps the ones that are dotted numeric versions.
func (it *FindOutdatedCommand) fetchRemoteVersions(
	ctx context.Context,
	state *runState,
	component entities.Component,
) ([]entities.Version, error) {
	source, err := it.source(state, component.Repository.SourceKind())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrSource, err)
	}

	if state.opts.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, state.opts.SourceTimeout)
		defer cancel()
	}

	raw, err := source.FetchVersions(ctx, component)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", entities.ErrSource, source.Name(), err)
	}
	return entities.ParseTags(raw), nil
}

// source returns the run's source for kind, creating it on first use.
func (it *FindOutdatedCommand) source(
	state *runState,
	kind entities.RepositoryKind,
) (repositories.VersionSourceRepository, error) {
	if cached, ok := state.sources.Load(kind); ok {
		return cached.(repositories.VersionSourceRepository), nil
	}
	source, err := it.sourceRegistry.Get(kind, state.opts.Sources[string(kind)])
	if err != nil {
		return nil, err
	}
	actual, _ := state.sources.LoadOrStore(kind, source)
	return actual.(repositories.VersionSourceRepository), nil
}

// UnknownVersions returns the versions of remote absent from known, in
// remote order and without duplicates.
func UnknownVersions(remote, known []entities.Version) []entities.Version {
	seen := make(map[string]struct{}, len(known)+len(remote))
	for _, version := range known {
		seen[version.String()] = struct{}{}
	}

	var unknown []entities.Version
	for _, version := range remote {
		key := version.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unknown = append(unknown, version)
	}
	return unknown
}

func filterByName(components []entities.Component, name string) []entities.Component {
	var filtered []entities.Component
	for _, component := range components {
		if component.Name == name {
			filtered = append(filtered, component)
		}
	}
	return filtered
}
