//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

func outdatedWith(projects ...string) entities.OutdatedComponent {
	owners := make([]entities.Project, 0, len(projects))
	for i, name := range projects {
		owners = append(owners, entities.Project{ID: int64(i + 1), Name: name})
	}
	return entities.OutdatedComponent{
		Name:           "serde",
		CurrentVersion: entities.MustParseVersion("1.0"),
		LatestVersion:  entities.MustParseVersion("1.1"),
		Projects:       owners,
	}
}

func TestNewNotification(t *testing.T) {
	t.Parallel()

	t.Run("should address the message and name the release in the subject", func(t *testing.T) {
		t.Parallel()

		// when
		notification, err := entities.NewNotification(outdatedWith("web"), "team@example.com", "example.com")

		// then
		require.NoError(t, err)
		assert.Equal(t, "packager@example.com", notification.From)
		assert.Equal(t, "team@example.com", notification.To)
		assert.Equal(t, "package: serde 1.1 is released!", notification.Subject)
	})

	tests := []struct {
		name     string
		projects []string
		expected string
	}{
		{
			name:     "should name a single project",
			projects: []string{"web"},
			expected: "project web contains 1.0, but 1.1 has just been released.",
		},
		{
			name:     "should join two projects with and",
			projects: []string{"web", "api"},
			expected: "projects web and api contain 1.0, but 1.1 has just been released.",
		},
		{
			name:     "should name two projects and others for three",
			projects: []string{"web", "api", "cli"},
			expected: "projects web, api and others contain 1.0, but 1.1 has just been released.",
		},
		{
			name:     "should name two projects and others for many",
			projects: []string{"web", "api", "cli", "batch", "docs"},
			expected: "projects web, api and others contain 1.0, but 1.1 has just been released.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			notification, err := entities.NewNotification(outdatedWith(tt.projects...), "team@example.com", "example.com")

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, notification.Body)
		})
	}

	t.Run("should fail when no project owns the component", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewNotification(outdatedWith(), "team@example.com", "example.com")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrNoOwningProject)
		assert.Contains(t, err.Error(), "serde")
	})
}
