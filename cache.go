package skycache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultMaxCacheBytes is the cache byte budget used when WithMaxCacheBytes
// is not given.
const DefaultMaxCacheBytes = 500 << 20

// Cache is a long-lived service resolving sky-image queries against a single
// cache directory. It owns the stored-images index and the in-progress
// registry; all methods are safe for concurrent use.
type Cache struct {
	dir             string
	maxBytes        int64
	client          *http.Client
	logger          *slog.Logger
	listener        Listener
	proximity       map[string]float64
	prefetchWorkers int
	now             func() time.Time

	images     *storedImages
	inProgress *imagesInProgress

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// New creates a Cache rooted at dir, creating the directory if needed and
// adopting any decodable image files already present. Unrecognized files are
// ignored.
func New(dir string, opts ...Option) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("cache dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	c := &Cache{
		dir:        abs,
		maxBytes:   DefaultMaxCacheBytes,
		client:     http.DefaultClient,
		listener:   NopListener{},
		proximity:  make(map[string]float64),
		now:        time.Now,
		inProgress: newImagesInProgress(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.maxBytes <= 0 {
		return nil, errors.New("max cache bytes must be > 0")
	}
	c.images = newStoredImages(func() time.Time { return c.now() })

	if err := c.Rescan(); err != nil {
		return nil, err
	}
	return c, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.logger
}

// Resolve returns a cached entry near the given coordinates, downloading the
// image when no usable cached copy exists.
//
// A (nil, nil) return means another Resolve call is already downloading this
// query; it is not an error, the caller should retry shortly. The listener
// may be nil, in which case the cache-wide listener (default no-op) is used.
func (c *Cache) Resolve(ctx context.Context, cat Catalog, ra, dec float64, l Listener) (*Entry, error) {
	if l == nil {
		l = c.listener
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrCacheClosed
	}

	q := NewQuery(cat.ID(), ra, dec)

	if e, ok := c.lookup(q, c.proximityFor(cat)); ok {
		return &e, nil
	}

	if !c.inProgress.markIfAbsent(q) {
		return nil, nil
	}

	l.DownloadStarts()
	entry, err := c.download(ctx, cat, q)
	if err != nil {
		c.inProgress.remove(q)
		l.DownloadError(err)
		return nil, err
	}

	// The entry must be indexed before the in-progress marker clears, or a
	// concurrent resolver could observe neither and start a second download.
	c.images.add(entry)
	c.inProgress.remove(q)
	c.spawnEviction()
	l.DownloadCompletes()
	return &entry, nil
}

// Find returns a cached entry near the coordinates if one exists on disk,
// touching its access time. It performs no network I/O.
func (c *Cache) Find(cat Catalog, ra, dec float64) (*Entry, bool) {
	q := NewQuery(cat.ID(), ra, dec)
	e, ok := c.lookup(q, c.proximityFor(cat))
	if !ok {
		return nil, false
	}
	return &e, true
}

// Rescan reconciles the index with the cache directory, adopting new files
// and dropping entries whose files have vanished.
func (c *Cache) Rescan() error {
	scanned, err := scanDir(c.dir, c.log())
	if err != nil {
		return err
	}
	c.images.sync(scanned)
	return nil
}

// Size returns the byte total of all tracked entries.
func (c *Cache) Size() int64 {
	return c.images.totalSize()
}

// Close marks the cache closed and waits for background eviction work to
// finish. Resolve calls after Close return ErrCacheClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
	return nil
}

// lookup returns an index hit whose file still exists, stamping its access
// time. A hit whose file vanished is dropped so the caller falls through to
// the download path.
func (c *Cache) lookup(q Query, maxDeg float64) (Entry, bool) {
	e, ok := c.images.find(q, maxDeg)
	if !ok {
		return Entry{}, false
	}
	if _, err := os.Stat(e.Path); err != nil {
		c.log().Debug("cached file vanished, dropping entry", "path", e.Path)
		c.images.remove(e.Query)
		return Entry{}, false
	}
	c.touch(e)
	return e, true
}

// touch stamps the entry as used now, in the index and on the file itself so
// access order survives a restart.
func (c *Cache) touch(e Entry) {
	c.images.touch(e.Query)
	now := c.now()
	if err := os.Chtimes(e.Path, now, now); err != nil {
		c.log().Debug("stamp access time", "path", e.Path, "error", err)
	}
}

// proximityFor returns the angular radius for cache hits against cat: the
// configured override, or half the catalog's smaller field-of-view axis.
func (c *Cache) proximityFor(cat Catalog) float64 {
	if r, ok := c.proximity[cat.ID()]; ok {
		return r
	}
	fovRA, fovDec := cat.FieldOfView()
	return math.Min(fovRA, fovDec) / 2
}

// spawnEviction runs an eviction pass detached from the calling Resolve so
// disk cleanup never delays the caller.
func (c *Cache) spawnEviction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.evict()
	}()
}
