package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	sourceName = "github"
	perPage    = 100
)

// GitHubVersionSourceRepository lists tags through the GitHub REST API.
type GitHubVersionSourceRepository struct {
	client *gh.Client
}

// NewGitHubVersionSourceRepository creates a GitHub source. A BaseURL in the
// settings targets a GitHub Enterprise instance.
func NewGitHubVersionSourceRepository(settings entities.SourceSettings) repositories.VersionSourceRepository {
	client := gh.NewClient(nil)
	if settings.Token != "" {
		client = client.WithAuthToken(settings.Token)
	}
	if settings.BaseURL != "" {
		enterprise, err := client.WithEnterpriseURLs(settings.BaseURL, settings.BaseURL)
		if err != nil {
			logger.Warnf("Ignoring invalid GitHub base URL %q: %v", settings.BaseURL, err)
		} else {
			client = enterprise
		}
	}
	return &GitHubVersionSourceRepository{client: client}
}

func (it *GitHubVersionSourceRepository) Name() string { return sourceName }

// FetchVersions returns every tag of the repository as "refs/tags/<name>".
func (it *GitHubVersionSourceRepository) FetchVersions(
	ctx context.Context,
	component entities.Component,
) ([]string, error) {
	path, err := component.Repository.Path()
	if err != nil {
		return nil, err
	}
	owner, name, _ := strings.Cut(path, "/")

	var allTags []string
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		tags, resp, listErr := it.client.Repositories.ListTags(ctx, owner, name, opts)
		if listErr != nil {
			return nil, fmt.Errorf("failed to list tags of %s: %w", path, listErr)
		}

		for _, tag := range tags {
			allTags = append(allTags, "refs/tags/"+tag.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allTags, nil
}
