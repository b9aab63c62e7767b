//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

func TestRepositoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "should parse an HTTPS URL", url: "https://github.com/serde-rs/serde", expected: "serde-rs/serde"},
		{name: "should strip the .git suffix", url: "https://github.com/serde-rs/serde.git", expected: "serde-rs/serde"},
		{name: "should parse an SCP-like SSH URL", url: "git@gitlab.com:group/lib.git", expected: "group/lib"},
		{name: "should keep nested groups", url: "https://gitlab.com/group/sub/lib", expected: "group/sub/lib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			path, err := entities.Repository{URL: tt.url}.Path()

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}

	t.Run("should fail when the URL has no owner", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.Repository{URL: "https://github.com/serde"}.Path()

		// then
		require.Error(t, err)
	})
}

func TestRepositorySourceKind(t *testing.T) {
	t.Parallel()

	t.Run("should default to git", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entities.RepositoryGit, entities.Repository{}.SourceKind())
		assert.Equal(t, entities.RepositoryGitLab, entities.Repository{Kind: entities.RepositoryGitLab}.SourceKind())
	})
}
