//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// ComponentBuilder helps create test components with a fluent interface.
type ComponentBuilder struct {
	*testkit.BaseBuilder
	id      int64
	name    string
	version string
	kind    entities.RepositoryKind
	url     string
}

// NewComponentBuilder creates a new component builder with sensible defaults.
func NewComponentBuilder() *ComponentBuilder {
	return &ComponentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		name:        "libfoo",
		version:     "1.0",
		kind:        entities.RepositoryGit,
		url:         "https://git.example.com/org/libfoo.git",
	}
}

// WithID sets the component id.
func (b *ComponentBuilder) WithID(id int64) *ComponentBuilder {
	b.id = id
	return b
}

// WithName sets the component name.
func (b *ComponentBuilder) WithName(name string) *ComponentBuilder {
	b.name = name
	return b
}

// WithVersion sets the pinned version, in dotted text form.
func (b *ComponentBuilder) WithVersion(version string) *ComponentBuilder {
	b.version = version
	return b
}

// WithKind sets the repository kind.
func (b *ComponentBuilder) WithKind(kind entities.RepositoryKind) *ComponentBuilder {
	b.kind = kind
	return b
}

// WithURL sets the repository URL.
func (b *ComponentBuilder) WithURL(url string) *ComponentBuilder {
	b.url = url
	return b
}

// Build creates the component (satisfies testkit.Builder interface).
func (b *ComponentBuilder) Build() interface{} {
	return b.BuildComponent()
}

// BuildComponent creates the component with a concrete return type.
func (b *ComponentBuilder) BuildComponent() entities.Component {
	return entities.Component{
		ID:             b.id,
		Name:           b.name,
		CurrentVersion: entities.MustParseVersion(b.version),
		Repository:     entities.Repository{Kind: b.kind, URL: b.url},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ComponentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.name = "libfoo"
	b.version = "1.0"
	b.kind = entities.RepositoryGit
	b.url = "https://git.example.com/org/libfoo.git"
	return b
}

// Clone creates a deep copy of the ComponentBuilder.
func (b *ComponentBuilder) Clone() testkit.Builder {
	return &ComponentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		name:        b.name,
		version:     b.version,
		kind:        b.kind,
		url:         b.url,
	}
}
