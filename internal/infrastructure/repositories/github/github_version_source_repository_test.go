//go:build unit

package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packager/internal/domain/entities"
	ghRepo "github.com/rios0rios0/packager/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/packager/test/domain/entitybuilders"
)

func TestGitHubVersionSourceRepositoryFetchVersions(t *testing.T) {
	t.Parallel()

	t.Run("should follow pagination and prefix every tag", func(t *testing.T) {
		t.Parallel()

		// given
		var server *httptest.Server
		var authorization string
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/repos/serde-rs/serde/tags") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			authorization = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("page") == "2" {
				_, _ = fmt.Fprint(w, `[{"name":"v1.1"}]`)
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=2>; rel="next"`, server.URL, r.URL.Path))
			_, _ = fmt.Fprint(w, `[{"name":"v1.0"},{"name":"latest"}]`)
		}))
		defer server.Close()

		source := ghRepo.NewGitHubVersionSourceRepository(entities.SourceSettings{
			Token:   "ghp_test",
			BaseURL: server.URL,
		})
		component := entitybuilders.NewComponentBuilder().
			WithKind(entities.RepositoryGitHub).
			WithURL("https://github.com/serde-rs/serde.git").
			BuildComponent()

		// when
		tags, err := source.FetchVersions(context.Background(), component)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"refs/tags/v1.0", "refs/tags/latest", "refs/tags/v1.1"}, tags)
		assert.Equal(t, "Bearer ghp_test", authorization)
		assert.Equal(t, "github", source.Name())
	})

	t.Run("should fail when the repository does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		source := ghRepo.NewGitHubVersionSourceRepository(entities.SourceSettings{BaseURL: server.URL})
		component := entitybuilders.NewComponentBuilder().WithURL("https://github.com/org/missing").BuildComponent()

		// when
		tags, err := source.FetchVersions(context.Background(), component)

		// then
		require.Error(t, err)
		assert.Nil(t, tags)
		assert.Contains(t, err.Error(), "org/missing")
	})

	t.Run("should fail for a URL without owner", func(t *testing.T) {
		t.Parallel()

		// given
		source := ghRepo.NewGitHubVersionSourceRepository(entities.SourceSettings{})
		component := entitybuilders.NewComponentBuilder().WithURL("https://github.com/lonely").BuildComponent()

		// when
		_, err := source.FetchVersions(context.Background(), component)

		// then
		require.Error(t, err)
	})
}
