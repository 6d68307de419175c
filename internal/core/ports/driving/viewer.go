package driving

import (
	"context"

	"github.com/custodia-labs/docview/internal/core/domain"
)

// ViewerService lists, creates, edits and deletes documents in the
// configured collections. Mutations report their outcome as a
// domain.Result instead of an error so callers decide how to surface it.
type ViewerService interface {
	// Collections returns the configured collection names in order.
	Collections() []string

	// LoadCollections fetches every configured collection. A collection
	// that fails is recorded in the report and the rest still load.
	LoadCollections(ctx context.Context) domain.LoadReport

	// ListDocuments fetches one configured collection.
	ListDocuments(ctx context.Context, collection string) ([]domain.Document, error)

	// AddDocument creates a document from a draft, stamped with a
	// creation time. An empty draft fails with domain.ErrEmptyDraft
	// without calling the store.
	AddDocument(ctx context.Context, collection string, draft domain.Draft) domain.Result

	// UpdateDocument writes the complete edited field map of a document.
	UpdateDocument(ctx context.Context, collection, id string, fields domain.Fields) domain.Result

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, collection, id string) domain.Result
}
