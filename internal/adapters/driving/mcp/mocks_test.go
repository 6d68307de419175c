package mcp

import (
	"context"

	"github.com/custodia-labs/docview/internal/core/domain"
)

// mockViewerService is a mock implementation of driving.ViewerService.
type mockViewerService struct {
	report    domain.LoadReport
	documents []domain.Document
	err       error
	result    *domain.Result

	gotCollection string
	gotID         string
	gotDraft      domain.Draft
	gotFields     domain.Fields
}

func (m *mockViewerService) Collections() []string {
	names := make([]string, 0, len(m.report.Collections))
	for _, c := range m.report.Collections {
		names = append(names, c.Name)
	}
	return names
}

func (m *mockViewerService) LoadCollections(_ context.Context) domain.LoadReport {
	return m.report
}

func (m *mockViewerService) ListDocuments(_ context.Context, collection string) ([]domain.Document, error) {
	m.gotCollection = collection
	return m.documents, m.err
}

func (m *mockViewerService) AddDocument(_ context.Context, collection string, draft domain.Draft) domain.Result {
	m.gotCollection = collection
	m.gotDraft = draft
	return m.resultFor(domain.Result{Op: domain.OperationCreate, Collection: collection, DocumentID: "new-id"})
}

func (m *mockViewerService) UpdateDocument(
	_ context.Context,
	collection, id string,
	fields domain.Fields,
) domain.Result {
	m.gotCollection = collection
	m.gotID = id
	m.gotFields = fields
	return m.resultFor(domain.Result{Op: domain.OperationUpdate, Collection: collection, DocumentID: id})
}

func (m *mockViewerService) DeleteDocument(_ context.Context, collection, id string) domain.Result {
	m.gotCollection = collection
	m.gotID = id
	return m.resultFor(domain.Result{Op: domain.OperationDelete, Collection: collection, DocumentID: id})
}

func (m *mockViewerService) resultFor(def domain.Result) domain.Result {
	if m.result != nil {
		return *m.result
	}
	return def
}
