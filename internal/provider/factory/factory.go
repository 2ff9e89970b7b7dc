// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"bucketctl/internal/config"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/storage"
)

// Factory turns a provider name (aws, gcp or minio) into a ready storage client
// using the settings of one loaded config
type Factory struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Providers whose settings are present in the config, sorted; used by "bucket list --providers all"
func (f *Factory) GetConfiguredProviders() []string {
	var configured []string
	for name, registration := range registry.Snapshot() {
		if registration.ConfigCheck(f.cfg) {
			configured = append(configured, name)
		}
	}
	sort.Strings(configured)
	return configured
}

func (f *Factory) IsConfigured(providerName string) bool {
	registration, ok := registry.Lookup(providerName)
	return ok && registration.ConfigCheck(f.cfg)
}

// The config's "provider" key, used when --provider is not given
func (f *Factory) DefaultProvider() string {
	return strings.ToLower(f.cfg.Provider)
}

func (f *Factory) GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error) {
	name := strings.ToLower(providerName)

	registration, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %q (choose one of %s)", providerName, strings.Join(registry.GetSupportedProviders(), ", "))
	}

	if !registration.ConfigCheck(f.cfg) {
		hint := registration.ConfigHint
		if hint == "" {
			hint = name + ".<key>"
		}
		return nil, fmt.Errorf("provider '%s' is not configured. Use 'bucketctl config set %s <value>'", name, hint)
	}

	f.logger.Debug("Initializing storage client", "provider", name)
	client, err := registration.Initializer(ctx, f.cfg, f.logger.With("provider", name))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", name, err)
	}
	return client, nil
}
