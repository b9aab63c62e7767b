//go:build unit

package controllers_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/packager/internal/infrastructure/controllers"
	"github.com/rios0rios0/packager/test/domain/commanddoubles"
)

func newCobraCommand(controller *controllers.CheckController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().Bool("verbose", false, "")
	controller.AddFlags(cmd)
	return cmd
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packager.yaml")
	content := "store:\n  driver: file\n  path: ledger.yaml\nconcurrency: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCheckController(t *testing.T) {
	t.Parallel()

	t.Run("should bind to the check subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewCheckController(&commanddoubles.StubCheckCommand{})

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "check", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})

	t.Run("should pass flags and settings to the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{}
		controller := controllers.NewCheckController(stub)
		cmd := newCobraCommand(controller)
		require.NoError(t, cmd.Flags().Set("config", writeConfig(t)))
		require.NoError(t, cmd.Flags().Set("dry-run", "true"))
		require.NoError(t, cmd.Flags().Set("component", "serde"))
		require.NoError(t, cmd.Flags().Set("concurrency", "5"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.False(t, controller.Failed())
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.True(t, stub.LastOpts.DryRun)
		assert.Equal(t, "serde", stub.LastOpts.ComponentName)
		assert.Equal(t, 5, stub.LastOpts.Concurrency)
		assert.Equal(t, 3, stub.LastSettings.Concurrency)
	})

	t.Run("should mark the run as failed when the command fails", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{ExecuteErr: errors.New("store unreachable")}
		controller := controllers.NewCheckController(stub)
		cmd := newCobraCommand(controller)
		require.NoError(t, cmd.Flags().Set("config", writeConfig(t)))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.True(t, controller.Failed())
	})

	t.Run("should mark the run as failed when the config cannot be loaded", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{}
		controller := controllers.NewCheckController(stub)
		cmd := newCobraCommand(controller)
		require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.True(t, controller.Failed())
		assert.Zero(t, stub.ExecuteCallCount)
	})
}
