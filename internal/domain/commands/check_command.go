package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/packager/internal/infrastructure/repositories"
)

// Check is the interface for the check command (find outdated components
// and announce them).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) error
}

// CheckOptions holds runtime options for a single check.
type CheckOptions struct {
	DryRun        bool
	Verbose       bool
	ComponentName string // If set, only check this component (CLI override)
	Concurrency   int    // If > 0, overrides the configured concurrency
}

// CheckCommand orchestrates a full run:
// open the store -> find outdated components -> notify the recipient.
type CheckCommand struct {
	findOutdated     FindOutdated
	storeRegistry    *infraRepos.StoreRegistry
	notifierRegistry *infraRepos.NotifierRegistry
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	findOutdated FindOutdated,
	storeRegistry *infraRepos.StoreRegistry,
	notifierRegistry *infraRepos.NotifierRegistry,
) *CheckCommand {
	return &CheckCommand{
		findOutdated:     findOutdated,
		storeRegistry:    storeRegistry,
		notifierRegistry: notifierRegistry,
	}
}

// Execute runs one check. In dry-run mode nothing is persisted and the
// announcements are printed instead of mailed.
func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	checkOpts CheckOptions,
) error {
	if checkOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	notifierName := infraRepos.NotifierSMTP
	if checkOpts.DryRun {
		notifierName = infraRepos.NotifierConsole
	}
	// Resolve the notifier before touching the ledger, so a bad mail
	// configuration does not swallow the versions of this run.
	notifier, err := it.notifierRegistry.Get(notifierName, settings.Mail)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier %q: %w", notifierName, err)
	}

	store, err := it.storeRegistry.Open(ctx, settings.Store)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warnf("Failed to close store: %v", closeErr)
		}
	}()

	var runStore repositories.StoreRepository = store
	if checkOpts.DryRun {
		logger.Info("Dry run: versions will not be recorded and no mail will be sent")
		runStore = infraRepos.NewDryRunStore(store)
	}

	concurrency := settings.Concurrency
	if checkOpts.Concurrency > 0 {
		concurrency = checkOpts.Concurrency
	}

	outdated, err := it.findOutdated.Execute(ctx, runStore, FindOutdatedOptions{
		Sources:       settings.Sources,
		SourceTimeout: settings.Timeout(),
		Concurrency:   concurrency,
		ComponentName: checkOpts.ComponentName,
	})
	if err != nil {
		return err
	}

	sent := 0
	for _, component := range outdated {
		notification, buildErr := entities.NewNotification(component, settings.Mail.Recipient, settings.Mail.Domain)
		if buildErr != nil {
			return buildErr
		}
		if notifyErr := notifier.Notify(ctx, notification); notifyErr != nil {
			return fmt.Errorf("failed to notify about %s: %w", component.Name, notifyErr)
		}
		sent++
	}

	logger.Infof("Check complete: %d outdated components, %d notifications sent via %s",
		len(outdated), sent, notifier.Name())
	return nil
}
