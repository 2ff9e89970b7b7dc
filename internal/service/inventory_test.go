package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bucketctl/internal/config"
	"bucketctl/internal/diagnostics"
	"bucketctl/internal/provider/factory"
	"bucketctl/internal/provider/registry"
	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

func registerFake(t *testing.T, name string, remote *fakeStorage) {
	t.Helper()
	registry.RegisterProvider(name, registry.ProviderRegistration{
		ConfigCheck: func(*config.Config) bool { return true },
		Initializer: func(context.Context, *config.Config, *slog.Logger) (storage.Storage, error) {
			return remote, nil
		},
	})
	t.Cleanup(func() { registry.Unregister(name) })
}

func TestListAllBuckets(t *testing.T) {
	west := newFakeStorage(map[string][]string{"zeta": nil, "alpha": nil})
	east := newFakeStorage(map[string][]string{"mid": nil})
	east.provider = common.GCP
	broken := newFakeStorage(nil)
	broken.errs["ListBuckets"] = errors.New("connection refused")

	registerFake(t, "inventory-west", west)
	registerFake(t, "inventory-east", east)
	registerFake(t, "inventory-broken", broken)

	fs := memfs.New()
	reporter, err := diagnostics.Open(fs, "error.log")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	inv := NewInventory(factory.NewFactory(config.DefaultConfig(), logger), reporter, logger)

	buckets, err := inv.ListAllBuckets(context.Background(), []string{"inventory-west", "inventory-east", "inventory-broken"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, []string{"alpha", "zeta", "mid"}, storage.BucketNames(buckets))
}

func TestListAllBuckets_UnknownProvider(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	inv := NewInventory(factory.NewFactory(config.DefaultConfig(), logger), nil, logger)

	buckets, err := inv.ListAllBuckets(context.Background(), []string{"nowhere"})
	assert.Empty(t, buckets)
	assert.ErrorContains(t, err, "unsupported provider")

	buckets, err = inv.ListAllBuckets(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, buckets)
}
