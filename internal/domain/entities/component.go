package entities

import (
	"fmt"
	"net/url"
	"strings"
)

// RepositoryKind selects the version source used for a component.
type RepositoryKind string

const (
	// RepositoryGit lists tags with a git ls-remote against any git URL.
	RepositoryGit RepositoryKind = "git"
	// RepositoryGitHub lists tags through the GitHub REST API.
	RepositoryGitHub RepositoryKind = "github"
	// RepositoryGitLab lists tags through the GitLab REST API.
	RepositoryGitLab RepositoryKind = "gitlab"
)

// Repository locates the upstream source of a component.
type Repository struct {
	Kind RepositoryKind
	URL  string
}

// Component is a tracked library pinned at CurrentVersion by internal projects.
type Component struct {
	ID             int64
	Name           string
	CurrentVersion Version
	Repository     Repository
}

// Project owns one or more components.
type Project struct {
	ID   int64
	Name string
}

// OutdatedComponent reports that a version newer than the pinned one was
// released upstream.
type OutdatedComponent struct {
	Name           string
	CurrentVersion Version
	LatestVersion  Version
	Projects       []Project
}

// SourceKind returns the repository kind, defaulting to RepositoryGit.
func (r Repository) SourceKind() RepositoryKind {
	if r.Kind == "" {
		return RepositoryGit
	}
	return r.Kind
}

// Path extracts the "owner/name" path of a hosted repository from an HTTPS
// or SCP-like SSH URL, without the ".git" suffix. Nested groups are kept
// ("group/sub/name").
func (r Repository) Path() (string, error) {
	path := ""
	if strings.HasPrefix(r.URL, "git@") {
		// git@github.com:owner/name.git
		_, after, found := strings.Cut(r.URL, ":")
		if !found {
			return "", fmt.Errorf("malformed SSH repository URL %q", r.URL)
		}
		path = after
	} else {
		parsed, err := url.Parse(r.URL)
		if err != nil {
			return "", fmt.Errorf("malformed repository URL %q: %w", r.URL, err)
		}
		path = parsed.Path
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if !strings.Contains(path, "/") {
		return "", fmt.Errorf("repository URL %q has no owner/name path", r.URL)
	}
	return path, nil
}
