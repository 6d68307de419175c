package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents keep their insertion order within a collection.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string][]domain.Document),
	}
}

// Put stores a document under its own id, replacing any document with
// the same id. Used to seed the store.
func (s *DocumentStore) Put(collection string, doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.Fields = doc.Fields.Clone()
	docs := s.collections[collection]
	if i := indexOf(docs, doc.ID); i >= 0 {
		docs[i] = doc
		return
	}
	s.collections[collection] = append(docs, doc)
}

// List returns every document in a collection.
func (s *DocumentStore) List(_ context.Context, collection string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]domain.Document, len(docs))
	for i, doc := range docs {
		out[i] = domain.Document{ID: doc.ID, Fields: doc.Fields.Clone()}
	}
	return out, nil
}

// Create adds a document under a new random id.
func (s *DocumentStore) Create(_ context.Context, collection string, fields domain.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.collections[collection] = append(s.collections[collection], domain.Document{
		ID:     id,
		Fields: fields.Clone(),
	})
	return id, nil
}

// Update merges fields into an existing document.
func (s *DocumentStore) Update(_ context.Context, collection, id string, fields domain.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	i := indexOf(docs, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	docs[i].Fields = docs[i].Fields.Merge(fields)
	return nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	i := indexOf(docs, id)
	if i < 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return nil
}

func indexOf(docs []domain.Document, id string) int {
	for i, doc := range docs {
		if doc.ID == id {
			return i
		}
	}
	return -1
}
