package gitlab

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	sourceName = "gitlab"
	perPage    = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabVersionSourceRepository lists tags through the GitLab REST API.
type GitLabVersionSourceRepository struct {
	client *gl.Client
}

// NewGitLabVersionSourceRepository creates a GitLab source. A BaseURL in the
// settings targets a self-hosted instance.
func NewGitLabVersionSourceRepository(settings entities.SourceSettings) repositories.VersionSourceRepository {
	var options []gl.ClientOptionFunc
	if settings.BaseURL != "" {
		options = append(options, gl.WithBaseURL(settings.BaseURL))
	}

	client, err := gl.NewClient(settings.Token, options...)
	if err != nil {
		// Return a source that will fail on use rather than panicking at construction
		logger.Warnf("Failed to initialize GitLab client: %v", err)
		return &GitLabVersionSourceRepository{client: nil}
	}
	return &GitLabVersionSourceRepository{client: client}
}

func (it *GitLabVersionSourceRepository) Name() string { return sourceName }

// FetchVersions returns every tag of the project as "refs/tags/<name>".
func (it *GitLabVersionSourceRepository) FetchVersions(
	ctx context.Context,
	component entities.Component,
) ([]string, error) {
	if it.client == nil {
		return nil, errClientNotInitialized
	}

	pid, err := component.Repository.Path()
	if err != nil {
		return nil, err
	}

	var allTags []string
	opts := &gl.ListTagsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		tags, resp, listErr := it.client.Tags.ListTags(pid, opts, gl.WithContext(ctx))
		if listErr != nil {
			return nil, fmt.Errorf("failed to list tags of %s: %w", pid, listErr)
		}

		for _, tag := range tags {
			allTags = append(allTags, "refs/tags/"+tag.Name)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allTags, nil
}
