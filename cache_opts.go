package skycache

import (
	"log/slog"
	"net/http"
)

// Option configures a Cache.
type Option func(*Cache)

// WithMaxCacheBytes sets the cache byte budget. After every successful
// download, entries are evicted oldest-accessed first until the total fits.
func WithMaxCacheBytes(limit int64) Option {
	return func(c *Cache) {
		c.maxBytes = limit
	}
}

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// WithLogger sets a logger for background events (eviction, skipped files,
// cleanup failures). By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithListener sets the cache-wide default listener used when Resolve is
// called with a nil listener.
func WithListener(l Listener) Option {
	return func(c *Cache) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithProximity overrides the cache-hit radius for one catalog, in degrees.
// The default is half the catalog's smaller field-of-view axis.
func WithProximity(catalogID string, radiusDeg float64) Option {
	return func(c *Cache) {
		c.proximity[catalogID] = radiusDeg
	}
}

// WithPrefetchConcurrency sets the number of workers used by Prefetch.
// Values <= 0 use the default.
func WithPrefetchConcurrency(workers int) Option {
	return func(c *Cache) {
		c.prefetchWorkers = workers
	}
}
