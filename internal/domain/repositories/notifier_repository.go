package repositories

import (
	"context"

	"github.com/rios0rios0/packager/internal/domain/entities"
)

// NotifierRepository delivers release announcements.
type NotifierRepository interface {
	// Name returns the notifier identifier (e.g. "smtp", "console").
	Name() string

	Notify(ctx context.Context, notification entities.Notification) error
}
