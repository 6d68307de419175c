package driven

import (
	"context"

	"github.com/custodia-labs/docview/internal/core/domain"
)

// DocumentStore is a document database addressed by collection name and
// document id. Every method is a single call to the underlying store.
//
// Implementations map their own failures onto the domain sentinels where
// they can: domain.ErrNotFound, domain.ErrPermissionDenied,
// domain.ErrInvalidInput and domain.ErrStoreUnavailable.
type DocumentStore interface {
	// List returns every document in a collection in store order.
	// An empty or missing collection yields no documents and no error.
	List(ctx context.Context, collection string) ([]domain.Document, error)

	// Create adds a document with the given fields and returns its
	// store-assigned id.
	Create(ctx context.Context, collection string, fields domain.Fields) (string, error)

	// Update sets the given fields on an existing document. Fields not
	// listed are left as they are.
	Update(ctx context.Context, collection, id string, fields domain.Fields) error

	// Delete removes a document.
	Delete(ctx context.Context, collection, id string) error
}
