package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packager/internal"
	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/infrastructure/controllers"
)

// failable is implemented by controllers that report the outcome of their
// last run, so the process can exit non-zero for cronjobs.
type failable interface {
	Failed() bool
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "packager",
		Short: "Release watcher for pinned components",
		Long: `Track the libraries your projects pin, notice when upstream publishes
a newer version, and mail the owners about it.

Usage:
  packager check             Check every component and send announcements
  packager check --dry-run   Print the announcements without recording versions`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect, then environment)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be announced without recording versions or sending mail")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, controllerList []entities.Controller) {
	for _, controller := range controllerList {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if cc, ok := ctrl.(*controllers.CheckController); ok {
			cc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func anyFailed(controllerList []entities.Controller) bool {
	for _, controller := range controllerList {
		if f, ok := controller.(failable); ok && f.Failed() {
			return true
		}
	}
	return false
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	controllerList := appContext.GetControllers()

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, controllerList)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'packager': %s", err)
	}
	if anyFailed(controllerList) {
		os.Exit(1)
	}
}
