//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// OutdatedComponentBuilder helps create outdated-component reports.
type OutdatedComponentBuilder struct {
	*testkit.BaseBuilder
	name     string
	current  string
	latest   string
	projects []string
}

// NewOutdatedComponentBuilder creates a report for libfoo 1.0 -> 1.1 used by one project.
func NewOutdatedComponentBuilder() *OutdatedComponentBuilder {
	return &OutdatedComponentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "libfoo",
		current:     "1.0",
		latest:      "1.1",
		projects:    []string{"alpha"},
	}
}

// WithName sets the component name.
func (b *OutdatedComponentBuilder) WithName(name string) *OutdatedComponentBuilder {
	b.name = name
	return b
}

// WithVersions sets the pinned and latest versions.
func (b *OutdatedComponentBuilder) WithVersions(current, latest string) *OutdatedComponentBuilder {
	b.current = current
	b.latest = latest
	return b
}

// WithProjects sets the names of the projects that contain the component.
func (b *OutdatedComponentBuilder) WithProjects(names ...string) *OutdatedComponentBuilder {
	b.projects = names
	return b
}

// Build creates the report (satisfies testkit.Builder interface).
func (b *OutdatedComponentBuilder) Build() interface{} {
	return b.BuildOutdated()
}

// BuildOutdated creates the report with a concrete return type.
func (b *OutdatedComponentBuilder) BuildOutdated() entities.OutdatedComponent {
	projects := make([]entities.Project, 0, len(b.projects))
	for i, name := range b.projects {
		projects = append(projects, entities.Project{ID: int64(i + 1), Name: name})
	}
	return entities.OutdatedComponent{
		Name:           b.name,
		CurrentVersion: entities.MustParseVersion(b.current),
		LatestVersion:  entities.MustParseVersion(b.latest),
		Projects:       projects,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *OutdatedComponentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "libfoo"
	b.current = "1.0"
	b.latest = "1.1"
	b.projects = []string{"alpha"}
	return b
}

// Clone creates a deep copy of the OutdatedComponentBuilder.
func (b *OutdatedComponentBuilder) Clone() testkit.Builder {
	return &OutdatedComponentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		current:     b.current,
		latest:      b.latest,
		projects:    append([]string(nil), b.projects...),
	}
}
