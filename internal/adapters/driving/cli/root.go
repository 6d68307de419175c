// Package cli provides the docview command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docview/internal/core/ports/driving"
	"github.com/custodia-labs/docview/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services used by the commands. They are set by the configurer before
// a command runs, or directly in tests.
var (
	settingsService driving.SettingsService
	viewerService   driving.ViewerService

	// storeErr records why the document store could not be opened.
	storeErr error
)

// Options holds the values of the global flags.
type Options struct {
	Verbose   bool
	LogFile   string
	ConfigDir string
	Timeout   time.Duration
}

// Configurer builds the services from the global flags. The returned
// function releases them after the command has run.
type Configurer func(opts Options) (func() error, error)

var (
	opts      Options
	configure Configurer
	release   func() error
	logOutput *os.File
)

var rootCmd = &cobra.Command{
	Use:   "docview",
	Short: "Browse and edit document database collections",
	Long: `docview lists, views, creates, edits and deletes documents in a fixed
set of collections of a document database.

Run without a subcommand to open the interactive viewer.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.LogFile, "log-file", "", "Write logs to a file instead of stderr")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "Configuration directory (default ~/.docview)")
	flags.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Timeout for one-shot commands (0 disables)")
}

// Execute runs the root command and releases the services afterwards.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetConfigurer sets the function that builds the services.
func SetConfigurer(c Configurer) {
	configure = c
}

// SetServices sets the services used by the commands.
func SetServices(settings driving.SettingsService, viewer driving.ViewerService) {
	settingsService = settings
	viewerService = viewer
}

// SetStoreError records why no viewer service could be built.
func SetStoreError(err error) {
	storeErr = err
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logOutput = f
		logger.SetOutput(f)
	}

	if configure == nil {
		return nil
	}
	cleanup, err := configure(opts)
	if err != nil {
		return err
	}
	release = cleanup
	return nil
}

func teardown() {
	if release != nil {
		if err := release(); err != nil {
			logger.Error("closing store: %v", err)
		}
		release = nil
	}
	if logOutput != nil {
		logger.SetOutput(os.Stderr)
		logOutput.Close() //nolint:errcheck
		logOutput = nil
	}
}

// commandContext derives the context for a one-shot command.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// requireViewer returns the viewer service or the reason it is missing.
func requireViewer() (driving.ViewerService, error) {
	if viewerService != nil {
		return viewerService, nil
	}
	if storeErr != nil {
		return nil, fmt.Errorf("document store not available: %w", storeErr)
	}
	return nil, errors.New("viewer service not configured")
}
