package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packager/internal/domain/commands"
	"github.com/rios0rios0/packager/internal/domain/entities"
)

// CheckController handles the "check" subcommand.
type CheckController struct {
	command commands.Check
	failed  bool
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Check tracked components for new releases",
		Long: `List the tags of every tracked component, record the versions
seen for the first time and mail an announcement for each component whose
pinned version was overtaken by one of them.

This is the main command intended to be used in a cronjob.
It reads the configuration file (or DATABASE_URL and MAIL_* variables
when there is none) and walks every component of the store.`,
	}
}

// Execute runs one check.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	it.failed = false

	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	componentName, _ := cmd.Flags().GetString("component")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	settings, err := loadSettings(configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		it.failed = true
		return
	}

	logger.Info("Starting packager check...")

	if runErr := it.command.Execute(ctx, settings, commands.CheckOptions{
		DryRun:        dryRun,
		Verbose:       verbose,
		ComponentName: componentName,
		Concurrency:   concurrency,
	}); runErr != nil {
		logger.Errorf("Check failed: %v", runErr)
		it.failed = true
	}
}

// Failed reports whether the last Execute ended in an error.
func (it *CheckController) Failed() bool {
	return it.failed
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("component", "", "Only check the component with this name")
	cmd.Flags().Int("concurrency", 0, "Number of components checked at once (overrides config)")
}

// loadSettings reads the given config file, the first one found in the
// default locations, or the environment when there is none.
func loadSettings(configPath string) (*entities.Settings, error) {
	cfgPath := configPath
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Infof("No config file found, reading settings from the environment")
			return entities.NewSettingsFromEnv()
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	return entities.NewSettings(cfgPath)
}
