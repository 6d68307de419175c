package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
	"github.com/custodia-labs/docview/internal/core/ports/driving"
	"github.com/custodia-labs/docview/internal/logger"
)

// Ensure ViewerService implements the interface.
var _ driving.ViewerService = (*ViewerService)(nil)

// ViewerService reads and writes documents of a fixed set of collections.
type ViewerService struct {
	store       driven.DocumentStore
	collections []string
	now         func() time.Time
}

// ViewerOption configures a ViewerService.
type ViewerOption func(*ViewerService)

// WithClock replaces the clock used to stamp created documents.
func WithClock(now func() time.Time) ViewerOption {
	return func(s *ViewerService) {
		s.now = now
	}
}

// NewViewerService creates a viewer over the given collections.
func NewViewerService(store driven.DocumentStore, collections []string, opts ...ViewerOption) *ViewerService {
	s := &ViewerService{
		store:       store,
		collections: slices.Clone(collections),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collections returns the configured collection names in order.
func (s *ViewerService) Collections() []string {
	return slices.Clone(s.collections)
}

// LoadCollections fetches every configured collection in order.
// Failed collections are left out of the result and reported separately.
func (s *ViewerService) LoadCollections(ctx context.Context) domain.LoadReport {
	logger.Section("Load Collections")

	report := domain.LoadReport{
		Collections: make([]domain.Collection, 0, len(s.collections)),
	}
	for _, name := range s.collections {
		docs, err := s.list(ctx, name)
		if err != nil {
			logger.Warn("loading collection %s: %v", name, err)
			report.Failures = append(report.Failures, domain.CollectionFailure{Name: name, Err: err})
			continue
		}
		logger.Debug("collection %s: %d documents", name, len(docs))
		report.Collections = append(report.Collections, domain.Collection{Name: name, Documents: docs})
	}
	return report
}

// ListDocuments fetches one configured collection.
func (s *ViewerService) ListDocuments(ctx context.Context, collection string) ([]domain.Document, error) {
	if err := s.checkCollection(collection); err != nil {
		return nil, err
	}
	return s.list(ctx, collection)
}

// AddDocument creates a document from the draft in a collection.
// The document gets a createdAt timestamp, replacing any draft field of
// that name.
func (s *ViewerService) AddDocument(ctx context.Context, collection string, draft domain.Draft) domain.Result {
	res := domain.Result{Op: domain.OperationCreate, Collection: collection}

	if err := s.checkCollection(collection); err != nil {
		return s.finish(res, err)
	}
	if draft.IsEmpty() {
		return s.finish(res, domain.ErrEmptyDraft)
	}
	if s.store == nil {
		return s.finish(res, domain.ErrStoreUnavailable)
	}

	fields := draft.ToFields().With(domain.CreatedAtField, domain.TimestampValue(s.now()))
	id, err := s.store.Create(ctx, collection, fields)
	res.DocumentID = id
	return s.finish(res, err)
}

// UpdateDocument writes the complete edited field map of a document.
func (s *ViewerService) UpdateDocument(
	ctx context.Context,
	collection, id string,
	fields domain.Fields,
) domain.Result {
	res := domain.Result{Op: domain.OperationUpdate, Collection: collection, DocumentID: id}

	if err := s.checkTarget(collection, id); err != nil {
		return s.finish(res, err)
	}
	return s.finish(res, s.store.Update(ctx, collection, id, fields))
}

// DeleteDocument removes a document.
func (s *ViewerService) DeleteDocument(ctx context.Context, collection, id string) domain.Result {
	res := domain.Result{Op: domain.OperationDelete, Collection: collection, DocumentID: id}

	if err := s.checkTarget(collection, id); err != nil {
		return s.finish(res, err)
	}
	return s.finish(res, s.store.Delete(ctx, collection, id))
}

func (s *ViewerService) list(ctx context.Context, collection string) ([]domain.Document, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.List(ctx, collection)
}

func (s *ViewerService) checkCollection(collection string) error {
	if !slices.Contains(s.collections, collection) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCollection, collection)
	}
	return nil
}

func (s *ViewerService) checkTarget(collection, id string) error {
	if err := s.checkCollection(collection); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	return nil
}

// finish records the outcome of a store call and logs failures.
func (s *ViewerService) finish(res domain.Result, err error) domain.Result {
	res.Err = err
	if err != nil {
		logger.Warn("%s", res)
	} else {
		logger.Debug("%s", res)
	}
	return res
}
