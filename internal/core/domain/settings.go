package domain

const unknownDescription = "Unknown"

// StoreBackend identifies where documents are read from and written to.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendFirestore is a Cloud Firestore database (or its emulator).
	StoreBackendFirestore StoreBackend = "firestore"

	// StoreBackendSQLite is a local SQLite database file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps documents in process memory.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendFirestore, StoreBackendSQLite, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// IsRemote returns true if the backend talks to a network service.
func (b StoreBackend) IsRemote() bool {
	return b == StoreBackendFirestore
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendFirestore:
		return "Cloud Firestore (remote)"
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendMemory:
		return "In-memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns every supported backend.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendFirestore,
		StoreBackendSQLite,
		StoreBackendMemory,
	}
}

// DefaultFirestoreDatabase is the database id used when none is configured.
const DefaultFirestoreDatabase = "(default)"

// FirestoreSettings holds the connection settings for Cloud Firestore.
type FirestoreSettings struct {
	// ProjectID is the Google Cloud project that owns the database.
	ProjectID string

	// Database is the database id within the project.
	Database string

	// APIKey authenticates requests with an API key.
	APIKey string

	// AccessToken authenticates requests with an OAuth2 bearer token.
	AccessToken string

	// Endpoint overrides the service URL, e.g. for the emulator.
	Endpoint string
}

// IsConfigured returns true if enough is set to reach a database.
func (f FirestoreSettings) IsConfigured() bool {
	return f.ProjectID != ""
}

// SQLiteSettings holds the settings for the local SQLite backend.
type SQLiteSettings struct {
	// DataDir is the directory holding the database file.
	// Empty means the config directory.
	DataDir string
}

// ViewerSettings holds what the viewer shows.
type ViewerSettings struct {
	// Collections is the fixed, ordered list of collection names.
	Collections []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Backend selects the document store.
	Backend StoreBackend

	// Firestore holds Cloud Firestore settings.
	Firestore FirestoreSettings

	// SQLite holds local database settings.
	SQLite SQLiteSettings

	// Viewer holds viewer settings.
	Viewer ViewerSettings
}

// DefaultCollections returns the collections shown when none are configured.
func DefaultCollections() []string {
	return []string{
		"Baekun",
		"Changjo",
		"Chungsong",
		"ConvergenceHall",
		"Jeongui",
		"Mirae",
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// Firestore is the default backend but is left without a project;
// users must configure one before loading.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: StoreBackendFirestore,
		Firestore: FirestoreSettings{
			Database: DefaultFirestoreDatabase,
		},
		Viewer: ViewerSettings{
			Collections: DefaultCollections(),
		},
	}
}
