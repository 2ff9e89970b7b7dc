// File: internal/provider/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"bucketctl/internal/config"
	"bucketctl/pkg/storage"
)

// Reports whether the config carries enough settings (a region, project or endpoint) to build the client
type ProviderConfigCheck func(cfg *config.Config) bool

// Builds the storage client for aws, gcp or minio from the loaded config
type ProviderInitializer func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error)

type ProviderRegistration struct {
	ConfigCheck ProviderConfigCheck
	Initializer ProviderInitializer
	// The config key an operator sets to enable the provider, e.g. "minio.endpoint"
	ConfigHint string
}

var (
	mu        sync.RWMutex
	providers = make(map[string]ProviderRegistration)
)

// Called from the init() of each storage adapter package. Names are case-insensitive.
// Registering a name twice or without a check or initializer is a programming error and panics.
func RegisterProvider(name string, registration ProviderRegistration) {
	key := strings.ToLower(name)
	switch {
	case registration.ConfigCheck == nil:
		panic(fmt.Sprintf("storage provider %q registered without a config check", key))
	case registration.Initializer == nil:
		panic(fmt.Sprintf("storage provider %q registered without an initializer", key))
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := providers[key]; dup {
		panic(fmt.Sprintf("storage provider %q registered twice", key))
	}
	providers[key] = registration
}

// Names of every compiled-in provider, sorted
func GetSupportedProviders() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(providers))
}

func IsSupported(name string) bool {
	_, ok := Lookup(name)
	return ok
}

func Lookup(name string) (ProviderRegistration, bool) {
	mu.RLock()
	defer mu.RUnlock()
	registration, ok := providers[strings.ToLower(name)]
	return registration, ok
}

// Copy of the registrations, safe to range over while adapters register
func Snapshot() map[string]ProviderRegistration {
	mu.RLock()
	defer mu.RUnlock()
	return maps.Clone(providers)
}

// Removes a registration; only tests replace providers at runtime
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(providers, strings.ToLower(name))
}
