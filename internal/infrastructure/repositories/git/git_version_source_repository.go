package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	sourceName    = "git"
	remoteName    = "origin"
	tokenUsername = "x-access-token"
)

// GitVersionSourceRepository lists tags with an in-memory "git ls-remote".
// Nothing is cloned: only the advertised references are read.
type GitVersionSourceRepository struct {
	token string
}

// NewGitVersionSourceRepository creates a git source. An empty token means
// anonymous access.
func NewGitVersionSourceRepository(settings entities.SourceSettings) repositories.VersionSourceRepository {
	return &GitVersionSourceRepository{token: settings.Token}
}

func (it *GitVersionSourceRepository) Name() string { return sourceName }

// FetchVersions returns the names of every advertised reference, peeled tag
// entries included, e.g. "refs/tags/v1.0" and "refs/tags/v1.0^{}".
func (it *GitVersionSourceRepository) FetchVersions(
	ctx context.Context,
	component entities.Component,
) ([]string, error) {
	//nolint:exhaustruct // Minimal RemoteConfig initialization with required fields only
	remote := gogit.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{component.Repository.URL},
	})

	//nolint:exhaustruct // Minimal ListOptions initialization with required fields only
	refs, err := remote.ListContext(ctx, &gogit.ListOptions{
		Auth:          it.auth(),
		PeelingOption: gogit.AppendPeeled,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list references of %q: %w", component.Repository.URL, err)
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name().String())
	}
	return names, nil
}

func (it *GitVersionSourceRepository) auth() transport.AuthMethod {
	if it.token == "" {
		return nil
	}
	return &http.BasicAuth{Username: tokenUsername, Password: it.token}
}
