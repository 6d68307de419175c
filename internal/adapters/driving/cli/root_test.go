package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/services"
)

// MockViewerService implements driving.ViewerService for CLI tests.
type MockViewerService struct {
	LoadCollectionsFunc func(ctx context.Context) domain.LoadReport
	ListDocumentsFunc   func(ctx context.Context, collection string) ([]domain.Document, error)
	AddDocumentFunc     func(ctx context.Context, collection string, draft domain.Draft) domain.Result
	UpdateDocumentFunc  func(ctx context.Context, collection, id string, fields domain.Fields) domain.Result
	DeleteDocumentFunc  func(ctx context.Context, collection, id string) domain.Result
}

func (m *MockViewerService) Collections() []string { return nil }

func (m *MockViewerService) LoadCollections(ctx context.Context) domain.LoadReport {
	if m.LoadCollectionsFunc != nil {
		return m.LoadCollectionsFunc(ctx)
	}
	return domain.LoadReport{}
}

func (m *MockViewerService) ListDocuments(ctx context.Context, collection string) ([]domain.Document, error) {
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx, collection)
	}
	return nil, nil
}

func (m *MockViewerService) AddDocument(ctx context.Context, collection string, draft domain.Draft) domain.Result {
	if m.AddDocumentFunc != nil {
		return m.AddDocumentFunc(ctx, collection, draft)
	}
	return domain.Result{Op: domain.OperationCreate, Collection: collection, DocumentID: "new"}
}

func (m *MockViewerService) UpdateDocument(
	ctx context.Context,
	collection, id string,
	fields domain.Fields,
) domain.Result {
	if m.UpdateDocumentFunc != nil {
		return m.UpdateDocumentFunc(ctx, collection, id, fields)
	}
	return domain.Result{Op: domain.OperationUpdate, Collection: collection, DocumentID: id}
}

func (m *MockViewerService) DeleteDocument(ctx context.Context, collection, id string) domain.Result {
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, collection, id)
	}
	return domain.Result{Op: domain.OperationDelete, Collection: collection, DocumentID: id}
}

// setupTestServices wires real services over in-memory stores, seeded
// with two documents in Mirae. It returns the document store and a
// cleanup function restoring the package state.
func setupTestServices() (*memory.DocumentStore, func()) {
	docs := memory.NewDocumentStore()
	docs.Put("Mirae", domain.Document{ID: "doc-1", Fields: domain.NewFields(
		domain.Field{Name: "name", Value: domain.StringValue("Mirae Hall")},
		domain.Field{Name: "floors", Value: domain.IntegerValue(5)},
	)})
	docs.Put("Mirae", domain.Document{ID: "doc-2", Fields: domain.NewFields(
		domain.Field{Name: "name", Value: domain.StringValue("Annex")},
	)})

	config := memory.NewConfigStore(map[string]any{
		"store.backend":      "memory",
		"viewer.collections": []string{"Baekun", "Mirae"},
	})
	settings := services.NewSettingsService(config, services.WithEnvLookup(func(string) (string, bool) {
		return "", false
	}))
	viewer := services.NewViewerService(docs, []string{"Baekun", "Mirae"})

	SetServices(settings, viewer)
	return docs, resetServices
}

func resetServices() {
	SetServices(nil, nil)
	SetStoreError(nil)
	listFormat = formatText
	projectDatabase = ""
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput("", args...)
}

func executeCommandWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docview", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "log-file", "config-dir", "timeout"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"collections", "document", "settings", "mcp", "tui", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version is ignored")
}

func TestConfigurerRunsBeforeCommand(t *testing.T) {
	defer resetServices()

	var got Options
	released := false
	SetConfigurer(func(o Options) (func() error, error) {
		got = o
		SetServices(nil, &MockViewerService{})
		return func() error {
			released = true
			return nil
		}, nil
	})
	defer SetConfigurer(nil)

	rootCmd.SetArgs([]string{"collections", "--config-dir", t.TempDir()})
	rootCmd.SetOut(new(bytes.Buffer))
	err := Execute()
	rootCmd.SetArgs(nil)

	require.NoError(t, err)
	assert.NotEmpty(t, got.ConfigDir)
	assert.True(t, released)
	opts.ConfigDir = ""
}

func TestConfigurerError(t *testing.T) {
	defer resetServices()
	SetConfigurer(func(Options) (func() error, error) {
		return nil, errors.New("broken config")
	})
	defer SetConfigurer(nil)

	_, err := executeCommand("collections")

	assert.EqualError(t, err, "broken config")
}

func TestRequireViewer(t *testing.T) {
	defer resetServices()

	_, err := requireViewer()
	assert.EqualError(t, err, "viewer service not configured")

	SetStoreError(domain.ErrStoreUnavailable)
	_, err = requireViewer()
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	viewer := &MockViewerService{}
	SetServices(nil, viewer)
	got, err := requireViewer()
	require.NoError(t, err)
	assert.Equal(t, viewer, got)
}
