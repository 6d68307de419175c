// Package backend opens the document store selected in the settings.
package backend

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docview/internal/adapters/driven/firestore"
	"github.com/custodia-labs/docview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docview/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/core/ports/driven"
	"github.com/custodia-labs/docview/internal/logger"
)

// CloseFunc releases whatever a store holds open.
type CloseFunc func() error

func noClose() error { return nil }

// Open builds the document store for settings.Backend. The sqlite
// database lives in settings.SQLite.DataDir, or configDir when unset.
func Open(ctx context.Context, settings domain.AppSettings, configDir string) (driven.DocumentStore, CloseFunc, error) {
	logger.Debug("opening %s store", settings.Backend)

	switch settings.Backend {
	case domain.StoreBackendFirestore:
		fs := settings.Firestore
		store, err := firestore.NewStore(ctx, firestore.Config{
			ProjectID:   fs.ProjectID,
			Database:    fs.Database,
			APIKey:      fs.APIKey,
			AccessToken: fs.AccessToken,
			Endpoint:    fs.Endpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening firestore: %w", err)
		}
		return store, noClose, nil

	case domain.StoreBackendSQLite:
		dir := settings.SQLite.DataDir
		if dir == "" {
			dir = configDir
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite: %w", err)
		}
		logger.Debug("sqlite database at %s", store.Path())
		return store.DocumentStore(), store.Close, nil

	case domain.StoreBackendMemory:
		return memory.NewDocumentStore(), noClose, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, settings.Backend)
}
