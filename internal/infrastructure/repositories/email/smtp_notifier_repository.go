package email

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	mail "github.com/wneessen/go-mail"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const notifierName = "smtp"

// SMTPNotifierRepository sends announcements through an SMTP relay. The relay
// is expected to accept unauthenticated mail from the host, so neither TLS
// nor SMTP AUTH is negotiated.
type SMTPNotifierRepository struct {
	client *mail.Client
}

// NewSMTPNotifierRepository creates a notifier for settings.RelayHost.
func NewSMTPNotifierRepository(settings entities.MailSettings) (repositories.NotifierRepository, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client, err := mail.NewClient(
		settings.RelayHost,
		mail.WithPort(settings.Port),
		mail.WithTLSPolicy(mail.NoTLS),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client for %q: %w", settings.RelayHost, err)
	}
	return &SMTPNotifierRepository{client: client}, nil
}

func (it *SMTPNotifierRepository) Name() string { return notifierName }

// Notify sends a plain text message built from notification.
func (it *SMTPNotifierRepository) Notify(ctx context.Context, notification entities.Notification) error {
	message, err := NewMessage(notification)
	if err != nil {
		return err
	}
	if sendErr := it.client.DialAndSendWithContext(ctx, message); sendErr != nil {
		return fmt.Errorf("failed to send %q: %w", notification.Subject, sendErr)
	}
	logger.Infof("Sent %q to %s", notification.Subject, notification.To)
	return nil
}

// NewMessage converts a notification into a plain text mail message.
func NewMessage(notification entities.Notification) (*mail.Msg, error) {
	message := mail.NewMsg()
	if err := message.From(notification.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", notification.From, err)
	}
	if err := message.To(notification.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", notification.To, err)
	}
	message.Subject(notification.Subject)
	message.SetBodyString(mail.TypeTextPlain, notification.Body)
	return message, nil
}
