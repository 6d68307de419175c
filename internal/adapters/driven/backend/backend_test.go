package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/adapters/driven/firestore"
	"github.com/custodia-labs/docview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docview/internal/core/domain"
)

func TestOpen_Memory(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Backend = domain.StoreBackendMemory

	store, closeFn, err := Open(context.Background(), settings, t.TempDir())

	require.NoError(t, err)
	assert.IsType(t, &memory.DocumentStore{}, store)
	assert.NoError(t, closeFn())
}

func TestOpen_SQLiteUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	settings := domain.DefaultAppSettings()
	settings.Backend = domain.StoreBackendSQLite

	store, closeFn, err := Open(context.Background(), settings, dir)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	ctx := context.Background()
	id, err := store.Create(ctx, "Mirae", domain.NewFields(domain.Field{Name: "city", Value: domain.StringValue("Seoul")}))
	require.NoError(t, err)
	docs, err := store.List(ctx, "Mirae")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)

	matches, err := filepath.Glob(filepath.Join(dir, "*.db"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestOpen_SQLiteDataDirOverride(t *testing.T) {
	dataDir := t.TempDir()
	settings := domain.DefaultAppSettings()
	settings.Backend = domain.StoreBackendSQLite
	settings.SQLite.DataDir = dataDir

	_, closeFn, err := Open(context.Background(), settings, t.TempDir())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	matches, err := filepath.Glob(filepath.Join(dataDir, "*.db"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestOpen_Firestore(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Firestore.ProjectID = "campus"
	settings.Firestore.Endpoint = "http://localhost:8080/"

	store, closeFn, err := Open(context.Background(), settings, t.TempDir())

	require.NoError(t, err)
	assert.IsType(t, &firestore.Store{}, store)
	assert.NoError(t, closeFn())
}

func TestOpen_FirestoreWithoutProject(t *testing.T) {
	_, _, err := Open(context.Background(), domain.DefaultAppSettings(), t.TempDir())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestOpen_UnsupportedBackend(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Backend = domain.StoreBackend("mongo")

	_, _, err := Open(context.Background(), settings, t.TempDir())

	assert.ErrorIs(t, err, domain.ErrUnsupportedBackend)
}
