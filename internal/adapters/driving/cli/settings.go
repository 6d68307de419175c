package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docview/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the document store and the collections shown.

Use subcommands to change a single setting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [name]",
	Short: "Set the document store backend",
	Long: `Set where documents are read from and written to.

Available backends:
  firestore - Cloud Firestore, or its emulator (requires a project)
  sqlite    - Local SQLite database file
  memory    - In-memory store, lost on exit

Run without a name to choose interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBackend,
}

var settingsCollectionsCmd = &cobra.Command{
	Use:   "collections [name...]",
	Short: "Set the collections shown",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSettingsCollections,
}

var settingsProjectCmd = &cobra.Command{
	Use:   "project [project-id]",
	Short: "Set the Firestore project",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsProject,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key [key]",
	Short: "Set the Firestore API key",
	Long:  `Store the Firestore API key. Without an argument the key is read from the terminal without echo.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsAPIKey,
}

// projectDatabase is a flag for the project command.
var projectDatabase string

func init() {
	settingsProjectCmd.Flags().StringVarP(&projectDatabase, "database", "d", "", "Database id (default \"(default)\")")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsCollectionsCmd)
	settingsCmd.AddCommand(settingsProjectCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Backend.Description())
	cmd.Println()

	if settings.Backend == domain.StoreBackendFirestore {
		fs := settings.Firestore
		cmd.Println("[Firestore]")
		cmd.Printf("  Project: %s\n", valueOrUnset(fs.ProjectID))
		cmd.Printf("  Database: %s\n", fs.Database)
		if fs.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", fs.Endpoint)
		}
		if fs.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(fs.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
		if fs.AccessToken != "" {
			cmd.Printf("  Access Token: %s\n", maskAPIKey(fs.AccessToken))
		}
		status := "configured"
		if !fs.IsConfigured() {
			status = "not configured"
		}
		cmd.Printf("  Status: %s\n", status)
		cmd.Println()
	}

	if settings.Backend == domain.StoreBackendSQLite {
		cmd.Println("[SQLite]")
		cmd.Printf("  Data directory: %s\n", valueOrDefault(settings.SQLite.DataDir, "(config directory)"))
		cmd.Println()
	}

	cmd.Println("[Viewer]")
	cmd.Printf("  Collections: %s\n", strings.Join(settings.Viewer.Collections, ", "))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docview settings --help' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var backend domain.StoreBackend
	if len(args) == 1 {
		backend = domain.StoreBackend(strings.ToLower(args[0]))
	} else {
		backends := domain.AllStoreBackends()
		cmd.Println("Select a backend:")
		for i, b := range backends {
			cmd.Printf("  %d. %-10s %s\n", i+1, b, b.Description())
		}
		cmd.Print("Choice [1]: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		choice := parseChoice(readLine(reader), len(backends), 1)
		backend = backends[choice-1]
	}

	if err := settingsService.SetBackend(backend); err != nil {
		return fmt.Errorf("failed to set backend: %w", err)
	}

	cmd.Printf("Backend set to %s\n", backend.Description())
	return nil
}

func runSettingsCollections(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	// Accept both "a b" and "a,b".
	var names []string
	for _, arg := range args {
		names = append(names, strings.Split(arg, ",")...)
	}

	if err := settingsService.SetCollections(names); err != nil {
		return fmt.Errorf("failed to set collections: %w", err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("Collections: %s\n", strings.Join(settings.Viewer.Collections, ", "))
	return nil
}

func runSettingsProject(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetFirestoreProject(args[0], projectDatabase); err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}

	cmd.Printf("Firestore project set to %s\n", strings.TrimSpace(args[0]))
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		cmd.Print("API key: ")
		key = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetFirestoreAPIKey(key); err != nil {
		return fmt.Errorf("failed to set API key: %w", err)
	}

	cmd.Printf("API key saved: %s\n", maskAPIKey(strings.TrimSpace(key)))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a secret without echo when stdin is a terminal,
// falling back to a plain line from in.
func readPassword(in io.Reader) string {
	if in == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func valueOrUnset(s string) string {
	return valueOrDefault(s, "(not set)")
}

func valueOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
