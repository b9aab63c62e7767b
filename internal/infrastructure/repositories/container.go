package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/infrastructure/repositories/console"
	"github.com/rios0rios0/packager/internal/infrastructure/repositories/email"
	"github.com/rios0rios0/packager/internal/infrastructure/repositories/filestore"
	gitRepo "github.com/rios0rios0/packager/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/packager/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/packager/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/packager/internal/infrastructure/repositories/postgres"
)

const (
	// NotifierSMTP mails announcements through the configured relay.
	NotifierSMTP = "smtp"
	// NotifierConsole prints announcements to stdout.
	NotifierConsole = "console"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register version source registry with all source factories
	if err := container.Provide(func() *VersionSourceRegistry {
		reg := NewVersionSourceRegistry()
		reg.Register(entities.RepositoryGit, gitRepo.NewGitVersionSourceRepository)
		reg.Register(entities.RepositoryGitHub, ghRepo.NewGitHubVersionSourceRepository)
		reg.Register(entities.RepositoryGitLab, glRepo.NewGitLabVersionSourceRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register store registry with all store drivers
	if err := container.Provide(func() *StoreRegistry {
		reg := NewStoreRegistry()
		reg.Register(entities.StoreDriverPostgres, postgres.NewPostgresStoreRepository)
		reg.Register(entities.StoreDriverFile, filestore.NewFileStoreRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register notifier registry
	if err := container.Provide(func() *NotifierRegistry {
		reg := NewNotifierRegistry()
		reg.Register(NotifierSMTP, email.NewSMTPNotifierRepository)
		reg.Register(NotifierConsole, console.NewConsoleNotifierRepository)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
