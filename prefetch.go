package skycache

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultPrefetchWorkers = 4

// Coordinates is a sky position in degrees.
type Coordinates struct {
	RA  float64
	Dec float64
}

// Prefetch warms the cache by resolving every coordinate pair against the
// catalog with bounded concurrency. Positions already cached or already
// being downloaded by another caller are skipped without error. The first
// fetch failure cancels the remaining work.
func (c *Cache) Prefetch(ctx context.Context, cat Catalog, coords ...Coordinates) error {
	workers := c.prefetchWorkers
	if workers <= 0 {
		workers = defaultPrefetchWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, co := range coords {
		co := co
		g.Go(func() error {
			_, err := c.Resolve(ctx, cat, co.RA, co.Dec, nil)
			return err
		})
	}
	return g.Wait()
}
