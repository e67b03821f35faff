package skycache

import (
	"errors"
	"io/fs"
	"os"
)

// evict prunes the cache back under the byte budget. Walking entries from
// newest to oldest access, the running size total is accumulated; once it
// crosses the budget, every entry from that point back is removed, so the
// cache keeps exactly the newest-accessed prefix that fits.
//
// File deletion is best-effort: a failed delete is logged but does not stop
// the pass, and the index entry is dropped regardless so lookups stop
// returning the dangling reference. A later rescan re-adopts any survivor.
func (c *Cache) evict() {
	entries := c.images.sortedByAccess()

	cut := -1
	var total int64
	for i := len(entries) - 1; i >= 0; i-- {
		total += entries[i].Size
		if total > c.maxBytes {
			cut = i
			break
		}
	}
	if cut < 0 {
		return
	}

	for i := cut; i >= 0; i-- {
		e := entries[i]
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.log().Warn("evict cache file", "path", e.Path, "error", err)
		} else {
			c.log().Debug("evicted cache file", "path", e.Path, "size", e.Size)
		}
		c.images.remove(e.Query)
	}
}
