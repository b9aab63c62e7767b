package repositories

import (
	"fmt"

	"github.com/rios0rios0/packager/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packager/internal/domain/repositories"
)

// NotifierFactory creates a NotifierRepository from the mail settings.
type NotifierFactory func(settings entities.MailSettings) (domainRepos.NotifierRepository, error)

// NotifierRegistry maps notifier names to notifier factories.
type NotifierRegistry struct {
	notifiers map[string]NotifierFactory
}

// NewNotifierRegistry creates an empty notifier registry.
func NewNotifierRegistry() *NotifierRegistry {
	return &NotifierRegistry{
		notifiers: make(map[string]NotifierFactory),
	}
}

// Register adds a notifier factory under the given name (e.g. "smtp").
func (r *NotifierRegistry) Register(name string, factory NotifierFactory) {
	r.notifiers[name] = factory
}

// Get returns a configured notifier for the given name.
func (r *NotifierRegistry) Get(
	name string,
	settings entities.MailSettings,
) (domainRepos.NotifierRepository, error) {
	factory, ok := r.notifiers[name]
	if !ok {
		return nil, fmt.Errorf("unknown notifier: %q", name)
	}
	return factory(settings)
}
