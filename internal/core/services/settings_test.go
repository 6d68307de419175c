package services

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docview/internal/core/domain"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), WithEnvLookup(noEnv))

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Backend, settings.Backend)
	assert.Equal(t, defaults.Firestore.Database, settings.Firestore.Database)
	assert.Equal(t, defaults.Viewer.Collections, settings.Viewer.Collections)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "sqlite")
	_ = store.Set("firestore.project_id", "campus")
	_ = store.Set("sqlite.data_dir", "/tmp/docview")
	_ = store.Set("viewer.collections", []any{"Mirae", "Baekun"})

	service := NewSettingsService(store, WithEnvLookup(noEnv))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendSQLite, settings.Backend)
	assert.Equal(t, "campus", settings.Firestore.ProjectID)
	assert.Equal(t, "/tmp/docview", settings.SQLite.DataDir)
	assert.Equal(t, []string{"Mirae", "Baekun"}, settings.Viewer.Collections)
}

func TestSettingsService_Get_InvalidBackendReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "mongo")

	service := NewSettingsService(store, WithEnvLookup(noEnv))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendFirestore, settings.Backend)
}

func TestSettingsService_Get_EnvironmentOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("firestore.project_id", "from-file")
	_ = store.Set("firestore.api_key", "file-key")

	service := NewSettingsService(store, WithEnvLookup(envMap(map[string]string{
		EnvFirestoreProject:     "from-env",
		EnvFirestoreAccessToken: "ya29.token",
		EnvFirestoreEmulator:    "localhost:8080",
		EnvFirestoreAPIKey:      "  ",
	})))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.Firestore.ProjectID)
	assert.Equal(t, "ya29.token", settings.Firestore.AccessToken)
	assert.Equal(t, "http://localhost:8080/", settings.Firestore.Endpoint)
	assert.Equal(t, "file-key", settings.Firestore.APIKey, "blank env values are ignored")
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	settings := &domain.AppSettings{
		Backend: domain.StoreBackendFirestore,
		Firestore: domain.FirestoreSettings{
			ProjectID: "campus",
			Database:  "buildings",
			APIKey:    "AIza-test",
			Endpoint:  "http://localhost:8080/",
		},
		Viewer: domain.ViewerSettings{Collections: []string{"Mirae"}},
	}

	err := service.Save(settings)
	require.NoError(t, err)

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, *settings, *retrieved)
}

func TestSettingsService_Save_KeepsStoredSecretsWhenBlank(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("firestore.api_key", "AIza-kept")
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	settings := service.GetDefaults()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "AIza-kept", store.GetString("firestore.api_key"))
}

func TestSettingsService_SetBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	require.NoError(t, service.SetBackend(domain.StoreBackendMemory))
	assert.Equal(t, "memory", store.GetString("store.backend"))

	err := service.SetBackend(domain.StoreBackend("mongo"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedBackend)
}

func TestSettingsService_SettersDoNotPersistEnvironment(t *testing.T) {
	env := map[string]string{
		EnvFirestoreProject:     "env-project",
		EnvFirestoreAPIKey:      "secret-from-env",
		EnvFirestoreAccessToken: "ya29.env",
		EnvFirestoreEmulator:    "localhost:8080",
	}
	setters := map[string]func(*SettingsService) error{
		"backend": func(s *SettingsService) error {
			return s.SetBackend(domain.StoreBackendSQLite)
		},
		"collections": func(s *SettingsService) error {
			return s.SetCollections([]string{"Mirae"})
		},
		"project": func(s *SettingsService) error {
			return s.SetFirestoreProject("file-project", "")
		},
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			store := memory.NewConfigStore()
			_ = store.Set("firestore.project_id", "file-project")
			_ = store.Set("firestore.endpoint", "")
			service := NewSettingsService(store, WithEnvLookup(envMap(env)))

			require.NoError(t, set(service))

			assert.Equal(t, "file-project", store.GetString("firestore.project_id"))
			assert.Empty(t, store.GetString("firestore.api_key"))
			assert.Empty(t, store.GetString("firestore.access_token"))
			assert.Empty(t, store.GetString("firestore.endpoint"))

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, "secret-from-env", settings.Firestore.APIKey, "overlay still applies")
			assert.Equal(t, "http://localhost:8080/", settings.Firestore.Endpoint)

			without, err := NewSettingsService(store, WithEnvLookup(noEnv)).Get()
			require.NoError(t, err)
			assert.Empty(t, without.Firestore.APIKey)
			assert.Empty(t, without.Firestore.Endpoint)
		})
	}
}

func TestSettingsService_SetCollections(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	require.NoError(t, service.SetCollections([]string{" Mirae ", "Baekun"}))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mirae", "Baekun"}, settings.Viewer.Collections)
}

func TestSettingsService_SetCollections_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "empty list", names: nil},
		{name: "blank name", names: []string{"Mirae", "  "}},
		{name: "duplicate name", names: []string{"Mirae", "Mirae"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, WithEnvLookup(noEnv))

			err := service.SetCollections(tt.names)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, stored := store.Get("viewer.collections")
			assert.False(t, stored)
		})
	}
}

func TestSettingsService_SetFirestoreProject(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	require.NoError(t, service.SetFirestoreProject("campus", ""))
	assert.Equal(t, "campus", store.GetString("firestore.project_id"))
	assert.Equal(t, domain.DefaultFirestoreDatabase, store.GetString("firestore.database"))

	require.NoError(t, service.SetFirestoreProject("campus", "staging"))
	assert.Equal(t, "staging", store.GetString("firestore.database"))

	assert.ErrorIs(t, service.SetFirestoreProject(" ", ""), domain.ErrInvalidInput)
}

func TestSettingsService_SetFirestoreAPIKey(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, WithEnvLookup(noEnv))

	require.NoError(t, service.SetFirestoreAPIKey(" AIza-key\n"))
	assert.Equal(t, "AIza-key", store.GetString("firestore.api_key"))

	assert.ErrorIs(t, service.SetFirestoreAPIKey(""), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr bool
	}{
		{
			name:    "firestore without project",
			values:  map[string]any{},
			wantErr: true,
		},
		{
			name:   "firestore with project",
			values: map[string]any{"firestore.project_id": "campus"},
		},
		{
			name:   "sqlite needs no project",
			values: map[string]any{"store.backend": "sqlite"},
		},
		{
			name: "duplicate stored collections",
			values: map[string]any{
				"store.backend":      "memory",
				"viewer.collections": []string{"A", "A"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			for k, v := range tt.values {
				_ = store.Set(k, v)
			}
			service := NewSettingsService(store, WithEnvLookup(noEnv))

			err := service.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				var fieldErrs validation.Errors
				assert.ErrorAs(t, err, &fieldErrs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
