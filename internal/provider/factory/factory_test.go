package factory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketctl/internal/config"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/storage"
)

func TestFactory(t *testing.T) {
	registry.RegisterProvider("factory-ready", registry.ProviderRegistration{
		ConfigCheck: func(*config.Config) bool { return true },
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) { return nil, nil },
	})
	registry.RegisterProvider("factory-unset", registry.ProviderRegistration{
		ConfigCheck: func(*config.Config) bool { return false },
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) { return nil, nil },
		ConfigHint:  "unset.endpoint",
	})
	t.Cleanup(func() {
		registry.Unregister("factory-ready")
		registry.Unregister("factory-unset")
	})

	cfg := config.DefaultConfig()
	cfg.Provider = "MINIO"
	f := NewFactory(cfg, slog.New(slog.DiscardHandler))

	assert.Equal(t, "minio", f.DefaultProvider())
	assert.Contains(t, f.GetConfiguredProviders(), "factory-ready")
	assert.NotContains(t, f.GetConfiguredProviders(), "factory-unset")
	assert.True(t, f.IsConfigured("Factory-Ready"))

	_, err := f.GetStorageProvider(context.Background(), "factory-ready")
	require.NoError(t, err)

	_, err = f.GetStorageProvider(context.Background(), "factory-unset")
	assert.ErrorContains(t, err, "bucketctl config set unset.endpoint <value>")

	_, err = f.GetStorageProvider(context.Background(), "azure")
	assert.ErrorContains(t, err, "unsupported provider")
}

func TestRegisterProvider_Duplicate(t *testing.T) {
	reg := registry.ProviderRegistration{
		ConfigCheck: func(*config.Config) bool { return true },
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) { return nil, nil },
	}
	registry.RegisterProvider("factory-dup", reg)
	t.Cleanup(func() { registry.Unregister("factory-dup") })

	assert.Panics(t, func() { registry.RegisterProvider("FACTORY-DUP", reg) })
	assert.True(t, registry.IsSupported("factory-dup"))
}

func TestRegisterProvider_Incomplete(t *testing.T) {
	initFn := func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) { return nil, nil }

	assert.Panics(t, func() { registry.RegisterProvider("factory-nocheck", registry.ProviderRegistration{Initializer: initFn}) })
	assert.Panics(t, func() {
		registry.RegisterProvider("factory-noinit", registry.ProviderRegistration{ConfigCheck: func(*config.Config) bool { return true }})
	})
	assert.False(t, registry.IsSupported("factory-nocheck"))
	assert.False(t, registry.IsSupported("factory-noinit"))
}
