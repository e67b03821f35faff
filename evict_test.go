package skycache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTracked writes a real file into the cache directory and registers it
// in the index, simulating a completed download.
func writeTracked(t *testing.T, c *Cache, ra, dec float64, size int) Entry {
	t.Helper()
	q := NewQuery("dss2", ra, dec)
	path := filepath.Join(c.dir, q.Filename(suffixFITS))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0o644))
	e := Entry{Query: q, Path: path, Size: int64(size)}
	c.images.add(e)
	return e
}

func TestEvictKeepsNewestPrefixWithinBudget(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxCacheBytes(1000))
	require.NoError(t, err)
	c.now = newFakeClock().now

	// Inserted in access order: a oldest, c newest.
	a := writeTracked(t, c, 10, 1, 600)
	b := writeTracked(t, c, 20, 2, 300)
	cc := writeTracked(t, c, 30, 3, 500)

	c.evict()

	// c(500) + b(300) fit the budget; adding a(600) would exceed it.
	assert.NoFileExists(t, a.Path)
	assert.FileExists(t, b.Path)
	assert.FileExists(t, cc.Path)
	assert.Equal(t, int64(800), c.Size())
}

func TestEvictDropsAllEntriesPastTheCut(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxCacheBytes(1000))
	require.NoError(t, err)
	c.now = newFakeClock().now

	// The oldest entry would fit on its own, but once the running total
	// crosses the budget everything older is dropped.
	tiny := writeTracked(t, c, 10, 1, 50)
	mid := writeTracked(t, c, 20, 2, 200)
	big := writeTracked(t, c, 30, 3, 900)

	c.evict()

	assert.FileExists(t, big.Path)
	assert.NoFileExists(t, mid.Path)
	assert.NoFileExists(t, tiny.Path)
	assert.Equal(t, int64(900), c.Size())
}

func TestEvictSparesTouchedEntries(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxCacheBytes(600))
	require.NoError(t, err)
	c.now = newFakeClock().now

	a := writeTracked(t, c, 10, 1, 600)
	b := writeTracked(t, c, 20, 2, 600)

	// A recent hit on a must protect it over the older, unused b.
	c.touch(a)
	c.evict()

	assert.FileExists(t, a.Path)
	assert.NoFileExists(t, b.Path)
}

func TestEvictNoopUnderBudget(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxCacheBytes(1000))
	require.NoError(t, err)
	c.now = newFakeClock().now

	a := writeTracked(t, c, 10, 1, 400)
	b := writeTracked(t, c, 20, 2, 400)

	c.evict()

	assert.FileExists(t, a.Path)
	assert.FileExists(t, b.Path)
	assert.Equal(t, int64(800), c.Size())
}

func TestEvictDropsIndexEntryWhenFileAlreadyGone(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxCacheBytes(100))
	require.NoError(t, err)
	c.now = newFakeClock().now

	stale := writeTracked(t, c, 10, 1, 90)
	fresh := writeTracked(t, c, 20, 2, 90)
	require.NoError(t, os.Remove(stale.Path))

	c.evict()

	_, ok := c.images.find(stale.Query, 0)
	assert.False(t, ok, "stale entry must leave the index")
	assert.FileExists(t, fresh.Path)
}
