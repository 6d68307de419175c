package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui"
	"github.com/custodia-labs/docview/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docview.

The TUI shows one collection at a time. Documents can be viewed, edited
in place or deleted, and new documents are composed in a draft form.

Controls:
  ←/h, →/l - Previous / next collection
  ↑/k, ↓/j - Navigate documents
  e        - Edit document (ctrl+s saves, esc cancels)
  d        - Delete document
  n        - New document draft
  r        - Reload
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	viewer, err := requireViewer()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; logs go to --log-file or nowhere.
	if opts.LogFile == "" {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	app, err := tui.NewApp(tui.NewPorts(viewer))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
