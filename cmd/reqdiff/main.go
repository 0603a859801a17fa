// Command reqdiff parses and compares ReqIF requirement documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/reqdiff/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reqdiff/internal/adapters/driven/pool"
	"github.com/custodia-labs/reqdiff/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reqdiff/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reqdiff/internal/adapters/driving/cli"
	"github.com/custodia-labs/reqdiff/internal/connectors/filesystem"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/services"
	"github.com/custodia-labs/reqdiff/internal/logger"
	"github.com/custodia-labs/reqdiff/internal/normalisers/reqif"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, build); err != nil {
		stop()
		os.Exit(1)
	}
}

// build wires adapters and services from the stored settings and the
// global flags.
func build(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		// Keep "settings set" usable to repair the file.
		logger.Error("invalid settings in %s, using defaults: %v", configStore.Path(), err)
		defaults := settingsService.GetDefaults()
		settings = &defaults
	}
	if opts.Workers > 0 {
		settings.Workers = opts.Workers
	}
	logger.Debug("config %s: threshold %.2f, %d workers", configStore.Path(), settings.Matching.Threshold, settings.Workers)

	var cache driven.ParseCache
	if !opts.NoCache {
		cache = memory.NewParseCache(settings.Parsing.CacheSize)
	}
	documents := services.NewDocumentService(
		filesystem.NewReader(),
		reqif.New(reqif.WithMaxIssues(settings.Parsing.MaxIssues)),
		cache,
	)
	connectors := filesystem.NewFactory(filesystem.OptionsFromSettings(settings.Discovery))

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	return &cli.Services{
		Documents:  documents,
		Comparison: services.NewComparisonService(documents),
		Folders:    services.NewFolderService(connectors, documents, settings.Matching),
		Settings:   settingsService,
		Snapshots:  services.NewSnapshotService(store, documents),
		Connectors: connectors,
		Pool:       pool.New(settings.Workers),
		Close:      store.Close,
	}, nil
}
