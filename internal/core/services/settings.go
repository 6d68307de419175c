package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
	"github.com/custodia-labs/docview/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackend              = "store.backend"
	keyFirestoreProject     = "firestore.project_id"
	keyFirestoreDatabase    = "firestore.database"
	keyFirestoreAPIKey      = "firestore.api_key"
	keyFirestoreAccessToken = "firestore.access_token"
	keyFirestoreEndpoint    = "firestore.endpoint"
	keySQLiteDataDir        = "sqlite.data_dir"
	keyCollections          = "viewer.collections"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvFirestoreProject     = "DOCVIEW_FIRESTORE_PROJECT_ID"
	EnvFirestoreAPIKey      = "DOCVIEW_FIRESTORE_API_KEY"
	EnvFirestoreAccessToken = "DOCVIEW_FIRESTORE_ACCESS_TOKEN"
	EnvFirestoreEmulator    = "FIRESTORE_EMULATOR_HOST"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces the environment lookup, os.LookupEnv by default.
func WithEnvLookup(lookup func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = lookup
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Environment variables take precedence over stored values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	s.applyEnv(settings)
	return settings, nil
}

// stored reads the settings as they are in the config store, without the
// environment overlay. Setters start from here so that environment values
// are never written back.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Backend: s.getBackend(defaults.Backend),
		Firestore: domain.FirestoreSettings{
			ProjectID:   s.configStore.GetString(keyFirestoreProject),
			Database:    s.getString(keyFirestoreDatabase, defaults.Firestore.Database),
			APIKey:      s.configStore.GetString(keyFirestoreAPIKey),
			AccessToken: s.configStore.GetString(keyFirestoreAccessToken),
			Endpoint:    s.configStore.GetString(keyFirestoreEndpoint),
		},
		SQLite: domain.SQLiteSettings{
			DataDir: s.configStore.GetString(keySQLiteDataDir),
		},
		Viewer: domain.ViewerSettings{
			Collections: s.getCollections(defaults.Viewer.Collections),
		},
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyBackend, settings.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}

	// Save firestore settings
	if err := s.configStore.Set(keyFirestoreProject, settings.Firestore.ProjectID); err != nil {
		return fmt.Errorf("save firestore project_id: %w", err)
	}
	if err := s.configStore.Set(keyFirestoreDatabase, settings.Firestore.Database); err != nil {
		return fmt.Errorf("save firestore database: %w", err)
	}
	if err := s.configStore.Set(keyFirestoreEndpoint, settings.Firestore.Endpoint); err != nil {
		return fmt.Errorf("save firestore endpoint: %w", err)
	}
	if settings.Firestore.APIKey != "" {
		if err := s.configStore.Set(keyFirestoreAPIKey, settings.Firestore.APIKey); err != nil {
			return fmt.Errorf("save firestore api_key: %w", err)
		}
	}
	if settings.Firestore.AccessToken != "" {
		if err := s.configStore.Set(keyFirestoreAccessToken, settings.Firestore.AccessToken); err != nil {
			return fmt.Errorf("save firestore access_token: %w", err)
		}
	}

	if err := s.configStore.Set(keySQLiteDataDir, settings.SQLite.DataDir); err != nil {
		return fmt.Errorf("save sqlite data_dir: %w", err)
	}

	collections := make([]string, len(settings.Viewer.Collections))
	copy(collections, settings.Viewer.Collections)
	if err := s.configStore.Set(keyCollections, collections); err != nil {
		return fmt.Errorf("save viewer collections: %w", err)
	}

	return nil
}

// SetBackend selects the document store backend.
func (s *SettingsService) SetBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
	}

	settings := s.stored()
	settings.Backend = backend
	return s.Save(settings)
}

// SetCollections replaces the list of collections shown.
// Names are trimmed; blank and duplicate names are rejected.
func (s *SettingsService) SetCollections(names []string) error {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		cleaned = append(cleaned, strings.TrimSpace(name))
	}

	viewer := domain.ViewerSettings{Collections: cleaned}
	if err := validateViewer(viewer); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	settings := s.stored()
	settings.Viewer = viewer
	return s.Save(settings)
}

// SetFirestoreProject sets the Firestore project and database.
func (s *SettingsService) SetFirestoreProject(projectID, database string) error {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	if database == "" {
		database = domain.DefaultFirestoreDatabase
	}

	settings := s.stored()
	settings.Firestore.ProjectID = projectID
	settings.Firestore.Database = database
	return s.Save(settings)
}

// SetFirestoreAPIKey stores the Firestore API key.
func (s *SettingsService) SetFirestoreAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyFirestoreAPIKey, apiKey)
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateSettings(settings *domain.AppSettings) error {
	backends := make([]any, 0, len(domain.AllStoreBackends()))
	for _, b := range domain.AllStoreBackends() {
		backends = append(backends, b)
	}

	return validation.ValidateStruct(settings,
		validation.Field(&settings.Backend, validation.Required, validation.In(backends...)),
		validation.Field(&settings.Firestore,
			validation.When(settings.Backend == domain.StoreBackendFirestore, validation.By(func(any) error {
				return validateFirestore(settings.Firestore)
			})),
		),
		validation.Field(&settings.Viewer, validation.By(func(any) error {
			return validateViewer(settings.Viewer)
		})),
	)
}

func validateFirestore(fs domain.FirestoreSettings) error {
	return validation.ValidateStruct(&fs,
		validation.Field(&fs.ProjectID, validation.Required.Error("is required for the firestore backend")),
		validation.Field(&fs.Database, validation.Required),
	)
}

func validateViewer(v domain.ViewerSettings) error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Collections,
			validation.Required.Error("at least one collection is required"),
			validation.Each(validation.Required),
			validation.By(uniqueNames),
		),
	)
}

func uniqueNames(value any) error {
	names, _ := value.([]string)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return errors.New("duplicate collection " + name)
		}
		seen[name] = true
	}
	return nil
}

// applyEnv overlays environment variables on top of stored settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v, ok := s.env(EnvFirestoreProject); ok {
		settings.Firestore.ProjectID = v
	}
	if v, ok := s.env(EnvFirestoreAPIKey); ok {
		settings.Firestore.APIKey = v
	}
	if v, ok := s.env(EnvFirestoreAccessToken); ok {
		settings.Firestore.AccessToken = v
	}
	if v, ok := s.env(EnvFirestoreEmulator); ok {
		settings.Firestore.Endpoint = "http://" + v + "/"
	}
}

func (s *SettingsService) env(name string) (string, bool) {
	if s.lookupEnv == nil {
		return "", false
	}
	v, ok := s.lookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(keyBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getCollections(defaultVal []string) []string {
	stored := s.configStore.GetStringSlice(keyCollections)
	if len(stored) == 0 {
		return defaultVal
	}
	names := make([]string, len(stored))
	copy(names, stored)
	return names
}
