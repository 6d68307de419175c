// Command docview browses and edits document database collections.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docview/internal/adapters/driven/backend"
	"github.com/custodia-labs/docview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docview/internal/adapters/driving/cli"
	"github.com/custodia-labs/docview/internal/core/services"
	"github.com/custodia-labs/docview/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetConfigurer(configure)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// configure builds the services. A store that cannot be opened is
// recorded rather than returned so settings commands still work.
func configure(opts cli.Options) (func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("config file %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := backend.Open(context.Background(), *settings, configStore.Dir())
	if err != nil {
		logger.Warn("%v", err)
		cli.SetServices(settingsService, nil)
		cli.SetStoreError(err)
		return nil, nil
	}

	viewer := services.NewViewerService(store, settings.Viewer.Collections)
	cli.SetServices(settingsService, viewer)
	return closeStore, nil
}
