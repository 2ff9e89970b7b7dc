// File: internal/service/inventory.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"bucketctl/internal/diagnostics"
	"bucketctl/internal/provider/factory"
	"bucketctl/pkg/storage"
)

// Inventory lists buckets across several configured providers at once
type Inventory struct {
	providerFactory *factory.Factory
	reporter        *diagnostics.Reporter
	logger          *slog.Logger
}

func NewInventory(providerFactory *factory.Factory, reporter *diagnostics.Reporter, logger *slog.Logger) *Inventory {
	return &Inventory{
		providerFactory: providerFactory,
		reporter:        reporter,
		logger:          logger.With("service", "Inventory"),
	}
}

// Returns the buckets of every provider that answered, sorted by provider then name.
// Providers that fail are reported and joined into the returned error alongside the partial result.
func (i *Inventory) ListAllBuckets(ctx context.Context, providerNames []string) ([]storage.Bucket, error) {
	if len(providerNames) == 0 {
		return nil, nil
	}

	i.logger.Debug("Starting ListAllBuckets operation", "providers", providerNames)

	var (
		allBuckets []storage.Bucket
		failures   []error
		mu         sync.Mutex
	)

	// Each provider's failure is collected rather than returned, so one outage never cancels the others
	g, gctx := errgroup.WithContext(ctx)
	for _, pName := range providerNames {
		g.Go(func() error {
			buckets, err := i.listProvider(gctx, pName)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				i.reporter.Report(gctx, "list buckets", err, "provider", pName)
				failures = append(failures, &TransportError{Op: "list buckets " + pName, Err: err})
				return nil
			}
			allBuckets = append(allBuckets, buckets...)
			i.logger.Debug("Successfully fetched buckets", "provider", pName, "count", len(buckets))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(allBuckets, func(a, b int) bool {
		if allBuckets[a].Provider != allBuckets[b].Provider {
			return allBuckets[a].Provider < allBuckets[b].Provider
		}
		return allBuckets[a].Name < allBuckets[b].Name
	})

	return allBuckets, errors.Join(failures...)
}

func (i *Inventory) listProvider(ctx context.Context, providerName string) ([]storage.Bucket, error) {
	client, err := i.providerFactory.GetStorageProvider(ctx, providerName)
	if err != nil {
		return nil, fmt.Errorf("error initializing provider: %w", err)
	}
	defer client.Close()

	return client.ListBuckets(ctx)
}
