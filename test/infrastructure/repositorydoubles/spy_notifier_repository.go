//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

// SpyNotifierRepository implements repositories.NotifierRepository and
// keeps every notification it receives.
type SpyNotifierRepository struct {
	NotifierName string
	NotifyErr    error

	mu   sync.Mutex
	Sent []entities.Notification
	// spy: the settings the factory was called with
	Settings *entities.MailSettings
}

var _ repositories.NotifierRepository = (*SpyNotifierRepository)(nil)

func (s *SpyNotifierRepository) Name() string {
	if s.NotifierName == "" {
		return "spy"
	}
	return s.NotifierName
}

func (s *SpyNotifierRepository) Notify(_ context.Context, notification entities.Notification) error {
	if s.NotifyErr != nil {
		return s.NotifyErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, notification)
	return nil
}

// Factory returns a notifier factory that always yields this spy.
func (s *SpyNotifierRepository) Factory() func(entities.MailSettings) (repositories.NotifierRepository, error) {
	return func(settings entities.MailSettings) (repositories.NotifierRepository, error) {
		s.Settings = &settings
		return s, nil
	}
}
