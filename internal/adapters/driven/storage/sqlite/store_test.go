package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) (*Store, driven.DocumentStore) {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store, store.DocumentStore()
}

func buildingFields() domain.Fields {
	return domain.NewFields(
		domain.Field{Name: "name", Value: domain.StringValue("Mirae Hall")},
		domain.Field{Name: "floors", Value: domain.IntegerValue(7)},
		domain.Field{Name: "area", Value: domain.DoubleValue(1200.5)},
		domain.Field{Name: "open", Value: domain.BoolValue(false)},
		domain.Field{Name: "createdAt", Value: domain.TimestampValue(time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC))},
		domain.Field{Name: "rooms", Value: domain.ArrayValue(domain.StringValue("101"), domain.IntegerValue(102))},
		domain.Field{Name: "manager", Value: domain.MapValue(domain.NewFields(
			domain.Field{Name: "name", Value: domain.StringValue("Kim")},
		))},
		domain.Field{Name: "note", Value: domain.NullValue()},
	)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "documents.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	id, err := first.DocumentStore().Create(ctx, "Mirae", buildingFields())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	docs, err := second.DocumentStore().List(ctx, "Mirae")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
}

func TestNewStore_InvalidDir(t *testing.T) {
	_, err := NewStore("/dev/null/docview")
	assert.Error(t, err)
}

func TestMigrate_RecordsVersions(t *testing.T) {
	store, _ := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	// Running again applies nothing new.
	fsys := fstest.MapFS{
		"001_documents.up.sql": {Data: []byte("THIS IS NOT SQL")},
		"002_extra.up.sql":     {Data: []byte("CREATE TABLE extra (id INTEGER);")},
		"002_extra.down.sql":   {Data: []byte("DROP TABLE extra;")},
		"notes.txt":            {Data: []byte("ignored")},
	}
	require.NoError(t, store.migrate(fsys))

	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"005_broken.up.sql": {Data: []byte("CREATE TABLE ok (id INTEGER); NOT SQL;")},
	}
	err := store.migrate(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "005_broken.up.sql")

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestDocumentStore_CreateAndList(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx := context.Background()

	id, err := docs.Create(ctx, "Mirae", buildingFields())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	list, err := docs.List(ctx, "Mirae")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.True(t, buildingFields().Equal(list[0].Fields), "kinds and order survive storage")
}

func TestDocumentStore_List_Empty(t *testing.T) {
	_, docs := setupTestStore(t)

	list, err := docs.List(context.Background(), "Baekun")

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentStore_List_SeparatesCollectionsAndKeepsOrder(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx := context.Background()

	a1, _ := docs.Create(ctx, "A", domain.Fields{})
	_, _ = docs.Create(ctx, "B", domain.Fields{})
	a2, _ := docs.Create(ctx, "A", domain.Fields{})

	list, err := docs.List(ctx, "A")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a1, list[0].ID)
	assert.Equal(t, a2, list[1].ID)
}

func TestDocumentStore_Update_Merges(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx := context.Background()
	id, err := docs.Create(ctx, "Mirae", buildingFields())
	require.NoError(t, err)

	patch := domain.NewFields(
		domain.Field{Name: "floors", Value: domain.IntegerValue(8)},
		domain.Field{Name: "renovated", Value: domain.BoolValue(true)},
	)
	require.NoError(t, docs.Update(ctx, "Mirae", id, patch))

	list, err := docs.List(ctx, "Mirae")
	require.NoError(t, err)
	want := buildingFields().Merge(patch)
	assert.True(t, want.Equal(list[0].Fields))
}

func TestDocumentStore_Update_NotFound(t *testing.T) {
	_, docs := setupTestStore(t)

	err := docs.Update(context.Background(), "Mirae", "missing", domain.Fields{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Update_WrongCollection(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx := context.Background()
	id, _ := docs.Create(ctx, "A", domain.Fields{})

	err := docs.Update(ctx, "B", id, domain.Fields{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx := context.Background()
	id, _ := docs.Create(ctx, "A", domain.Fields{})
	keep, _ := docs.Create(ctx, "A", domain.Fields{})

	require.NoError(t, docs.Delete(ctx, "A", id))

	list, _ := docs.List(ctx, "A")
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)

	assert.ErrorIs(t, docs.Delete(ctx, "A", id), domain.ErrNotFound)
}

func TestDocumentStore_CorruptRow(t *testing.T) {
	store, docs := setupTestStore(t)
	ctx := context.Background()

	_, err := store.db.Exec(`INSERT INTO documents (collection, id, fields) VALUES ('A', 'bad', 'not json')`)
	require.NoError(t, err)

	_, err = docs.List(ctx, "A")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestDocumentStore_CancelledContext(t *testing.T) {
	_, docs := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := docs.List(ctx, "A")
	assert.Error(t, err)
}
