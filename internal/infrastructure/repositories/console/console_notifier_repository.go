package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	notifierName = "console"
	labelWidth   = 9
)

var (
	headerColor  = color.New(color.FgWhite, color.Bold)
	labelColor   = color.New(color.FgCyan)
	subjectColor = color.New(color.FgGreen, color.Bold)
)

// ConsoleNotifierRepository prints announcements instead of mailing them.
// It backs dry runs.
type ConsoleNotifierRepository struct {
	out io.Writer
	mu  sync.Mutex
}

// NewConsoleNotifierRepository creates a notifier writing to stdout.
func NewConsoleNotifierRepository(_ entities.MailSettings) (repositories.NotifierRepository, error) {
	return NewConsoleNotifierRepositoryTo(os.Stdout), nil
}

// NewConsoleNotifierRepositoryTo creates a notifier writing to out.
func NewConsoleNotifierRepositoryTo(out io.Writer) *ConsoleNotifierRepository {
	return &ConsoleNotifierRepository{out: out}
}

func (it *ConsoleNotifierRepository) Name() string { return notifierName }

func (it *ConsoleNotifierRepository) Notify(_ context.Context, notification entities.Notification) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	var builder strings.Builder
	headerColor.Fprintln(&builder, strings.Repeat("-", runewidth.StringWidth(notification.Subject)+labelWidth))
	writeField(&builder, "From", notification.From, nil)
	writeField(&builder, "To", notification.To, nil)
	writeField(&builder, "Subject", notification.Subject, subjectColor)
	builder.WriteString("\n")
	builder.WriteString(notification.Body)
	builder.WriteString("\n")

	if _, err := io.WriteString(it.out, builder.String()); err != nil {
		return fmt.Errorf("failed to print %q: %w", notification.Subject, err)
	}
	return nil
}

func writeField(builder *strings.Builder, label, value string, valueColor *color.Color) {
	labelColor.Fprint(builder, runewidth.FillRight(label+":", labelWidth))
	if valueColor != nil {
		valueColor.Fprintln(builder, value)
		return
	}
	builder.WriteString(value + "\n")
}
