package driving

import "github.com/custodia-labs/docview/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetBackend selects the document store backend.
	SetBackend(backend domain.StoreBackend) error

	// SetCollections replaces the list of collections shown.
	SetCollections(names []string) error

	// SetFirestoreProject sets the Firestore project and database.
	// An empty database selects the default database.
	SetFirestoreProject(projectID, database string) error

	// SetFirestoreAPIKey stores the Firestore API key.
	SetFirestoreAPIKey(apiKey string) error

	// Validate checks the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
