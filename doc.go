// Package skycache resolves (catalog, sky coordinate) queries to locally
// cached image files, downloading from the catalog's image server only when
// no suitable cached copy exists.
//
// Cache hits are approximate: a query matches a stored image when both
// coordinate deltas fall within the catalog's proximity radius, so a later
// query need not hit the originally cached field center pixel for pixel.
// Concurrent resolutions of the same query never trigger duplicate
// downloads, and the on-disk cache is pruned back to a configured byte
// budget after every successful download.
//
// # Quick Start
//
// Create a cache over a directory and resolve coordinates against a catalog:
//
//	c, err := skycache.New("/var/cache/skyimages",
//	    skycache.WithMaxCacheBytes(500<<20),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	entry, err := c.Resolve(ctx, catalog, 187.2792, 2.0525, nil)
//	if err != nil {
//	    return err
//	}
//	if entry == nil {
//	    // another caller is already downloading this image; retry shortly
//	}
//
// Catalogs are supplied by the caller as implementations of [Catalog]; this
// package never constructs catalog URLs itself.
//
// # Concurrency
//
// A Cache is safe for concurrent use. Resolutions of distinct queries run
// fully concurrently. A resolution that finds the same query already being
// downloaded returns (nil, nil) rather than waiting: the contract is "retry
// shortly", not result sharing. Eviction runs detached from the triggering
// Resolve call so callers are never delayed by disk cleanup.
package skycache
