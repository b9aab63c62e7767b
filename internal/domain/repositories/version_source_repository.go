package repositories

import (
	"context"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// VersionSourceRepository lists the tags published upstream for a component.
type VersionSourceRepository interface {
	// Name returns the source identifier (e.g. "git", "github").
	Name() string

	// FetchVersions returns every tag-like entry visible at the component's
	// repository, such as "refs/tags/v1.2" or "v1.2". Entries are not
	// filtered: callers normalise them with entities.ParseTag.
	FetchVersions(ctx context.Context, component entities.Component) ([]string, error)
}
