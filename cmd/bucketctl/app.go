// File: cmd/bucketctl/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"bucketctl/internal/config"
	"bucketctl/internal/diagnostics"
	"bucketctl/internal/localfs"
	"bucketctl/internal/logger"
	"bucketctl/internal/provider/factory"
	"bucketctl/internal/service"
	"bucketctl/internal/ui/prompt"
	"bucketctl/pkg/formatter"
)

// appContainer holds all the shared dependencies for the storage commands
// This includes configuration, the provider factory, the diagnostic sink, and the logger
type appContainer struct {
	Config           *config.Config
	ProviderFactory  *factory.Factory
	Inventory        *service.Inventory
	StorageFormatter *formatter.StorageFormatter
	Files            *localfs.Files
	Reporter         *diagnostics.Reporter
	Prompter         prompt.Prompter
	Logger           *slog.Logger

	providerOverride string
	storageService   *service.StorageService
}

// Loads the configuration and opens (truncating) the diagnostic sink
func newApp(c *cli) (*appContainer, error) {
	cfg, err := c.configManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	if !c.debug {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			return nil, err
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting working directory: %w", err)
	}
	fs := localfs.NewOSFilesystem()

	reporter, err := diagnostics.Open(fs, localfs.Resolve(workDir, cfg.Diagnostics.File))
	if err != nil {
		return nil, err
	}

	files := localfs.New(fs,
		localfs.Resolve(workDir, cfg.Files.UploadSource),
		localfs.Resolve(workDir, cfg.Files.DownloadTarget))
	providerFactory := factory.NewFactory(cfg, c.logger)

	return &appContainer{
		Config:           cfg,
		ProviderFactory:  providerFactory,
		Inventory:        service.NewInventory(providerFactory, reporter, c.logger),
		StorageFormatter: formatter.NewStorageFormatter(),
		Files:            files,
		Reporter:         reporter,
		Prompter:         prompt.NewStandardPrompter(c.in, c.out),
		Logger:           c.logger,
		providerOverride: c.provider,
	}, nil
}

// Returns the service for the active provider, building its client on first use
func (a *appContainer) StorageService(ctx context.Context) (*service.StorageService, error) {
	if a.storageService != nil {
		return a.storageService, nil
	}

	providerName := a.providerOverride
	if providerName == "" {
		providerName = a.ProviderFactory.DefaultProvider()
	}

	client, err := a.ProviderFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return nil, fmt.Errorf("error initializing provider: %w", err)
	}

	a.storageService = service.NewStorageService(client, a.Files, a.Reporter, a.Logger, service.Options{
		Match: service.MatchMode(a.Config.Naming.Match),
	})
	return a.storageService, nil
}

func (a *appContainer) Close() error {
	var errs []error
	if a.storageService != nil {
		errs = append(errs, a.storageService.Close())
	}
	errs = append(errs, a.Reporter.Close())
	return errors.Join(errs...)
}
