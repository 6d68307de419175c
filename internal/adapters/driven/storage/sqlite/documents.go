package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// List returns every document of a collection in insertion order.
func (s *documentStore) List(ctx context.Context, collection string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, fields FROM documents
		WHERE collection = ?
		ORDER BY seq
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Create inserts a document under a new random id.
func (s *documentStore) Create(ctx context.Context, collection string, fields domain.Fields) (string, error) {
	encoded, err := domain.EncodeFields(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, fields) VALUES (?, ?, ?)
	`, collection, id, string(encoded))
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return id, nil
}

// Update merges fields into an existing document. The read and the write
// share a transaction so concurrent updates do not drop fields.
func (s *documentStore) Update(ctx context.Context, collection, id string, fields domain.Fields) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `
		SELECT fields FROM documents WHERE collection = ? AND id = ?
	`, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	current, err := domain.DecodeFields([]byte(raw))
	if err != nil {
		return err
	}
	encoded, err := domain.EncodeFields(current.Merge(fields))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE documents SET fields = ?, updated_at = CURRENT_TIMESTAMP
		WHERE collection = ? AND id = ?
	`, string(encoded), collection, id)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	return tx.Commit()
}

// Delete removes a document.
func (s *documentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.store.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return nil
}

func scanDocument(rows *sql.Rows) (domain.Document, error) {
	var id, raw string
	if err := rows.Scan(&id, &raw); err != nil {
		return domain.Document{}, fmt.Errorf("scanning document: %w", err)
	}
	fields, err := domain.DecodeFields([]byte(raw))
	if err != nil {
		return domain.Document{}, fmt.Errorf("document %s: %w", id, err)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}
