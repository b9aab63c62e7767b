//go:build unit

package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/packager/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/packager/test/infrastructure/repositorydoubles"
)

func TestVersionSourceRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build a registered source with its settings", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewVersionSourceRegistry()
		var received entities.SourceSettings
		registry.Register(entities.RepositoryGit, func(settings entities.SourceSettings) repositories.VersionSourceRepository {
			received = settings
			return doubles.NewStubVersionSourceRepository()
		})

		// when
		source, err := registry.Get(entities.RepositoryGit, entities.SourceSettings{Token: "secret"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "stub", source.Name())
		assert.Equal(t, "secret", received.Token)
		assert.Equal(t, []entities.RepositoryKind{entities.RepositoryGit}, registry.Kinds())
	})

	t.Run("should fail for an unknown kind", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewVersionSourceRegistry()

		// when
		source, err := registry.Get(entities.RepositoryGitLab, entities.SourceSettings{})

		// then
		require.Error(t, err)
		assert.Nil(t, source)
	})
}

func TestStoreRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should open the configured driver", func(t *testing.T) {
		t.Parallel()

		// given
		store := doubles.NewInMemoryStoreRepository()
		registry := infraRepos.NewStoreRegistry()
		registry.Register(entities.StoreDriverFile, store.Factory())

		// when
		opened, err := registry.Open(context.Background(), entities.StoreSettings{Driver: entities.StoreDriverFile})

		// then
		require.NoError(t, err)
		assert.Same(t, store, opened)
	})

	t.Run("should wrap factory failures as store errors", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewStoreRegistry()
		registry.Register(entities.StoreDriverPostgres,
			func(context.Context, entities.StoreSettings) (repositories.StoreRepository, error) {
				return nil, errors.New("connection refused")
			})

		// when
		_, err := registry.Open(context.Background(), entities.StoreSettings{Driver: entities.StoreDriverPostgres})

		// then
		require.ErrorIs(t, err, entities.ErrStore)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("should fail for an unknown driver", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := infraRepos.NewStoreRegistry().Open(context.Background(), entities.StoreSettings{Driver: "sqlite"})

		// then
		require.ErrorIs(t, err, entities.ErrStore)
	})
}

func TestNotifierRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build a registered notifier", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyNotifierRepository{}
		registry := infraRepos.NewNotifierRegistry()
		registry.Register(infraRepos.NotifierConsole, spy.Factory())

		// when
		notifier, err := registry.Get(infraRepos.NotifierConsole, entities.MailSettings{Domain: "example.com"})

		// then
		require.NoError(t, err)
		assert.Same(t, spy, notifier)
		require.NotNil(t, spy.Settings)
		assert.Equal(t, "example.com", spy.Settings.Domain)
	})

	t.Run("should fail for an unknown notifier", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := infraRepos.NewNotifierRegistry().Get("pager", entities.MailSettings{})

		// then
		require.Error(t, err)
	})
}

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should register every built-in source", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, infraRepos.RegisterProviders(container))

		// when
		var kinds []entities.RepositoryKind
		err := container.Invoke(func(registry *infraRepos.VersionSourceRegistry) {
			kinds = registry.Kinds()
		})

		// then
		require.NoError(t, err)
		assert.ElementsMatch(t, []entities.RepositoryKind{
			entities.RepositoryGit, entities.RepositoryGitHub, entities.RepositoryGitLab,
		}, kinds)
	})
}
