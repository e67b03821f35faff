package skycache

import (
	"sort"
	"sync"
	"time"
)

// storedImages is the authoritative in-memory view of the cache directory:
// a map from exact Query to Entry plus a last-access stamp per entry.
//
// Every entry's file exists on disk at the moment it is inserted; the index
// and the filesystem may diverge afterward, so callers must re-validate
// existence before using a hit.
type storedImages struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[Query]*storedImage
}

type storedImage struct {
	entry    Entry
	accessed time.Time
}

func newStoredImages(now func() time.Time) *storedImages {
	return &storedImages{
		now:     now,
		entries: make(map[Query]*storedImage),
	}
}

// find returns any entry whose query lies within maxDeg of q in the same
// catalog. Near-duplicates are not merged; the first match wins. The backing
// file is not checked.
func (s *storedImages) find(q Query, maxDeg float64) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, si := range s.entries {
		if q.IsNearby(si.entry.Query, maxDeg) {
			return si.entry, true
		}
	}
	return Entry{}, false
}

// add inserts or overwrites the entry keyed by its exact query, stamped as
// accessed now.
func (s *storedImages) add(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Query] = &storedImage{entry: e, accessed: s.now()}
}

// remove drops the entry for q. It does not touch the filesystem.
func (s *storedImages) remove(q Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, q)
}

// touch stamps q as accessed now, protecting hot entries from eviction.
func (s *storedImages) touch(q Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if si, ok := s.entries[q]; ok {
		si.accessed = s.now()
	}
}

// sortedByAccess returns all entries ordered oldest-accessed first.
func (s *storedImages) sortedByAccess() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	ordered := make([]*storedImage, 0, len(s.entries))
	for _, si := range s.entries {
		ordered = append(ordered, si)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].accessed.Before(ordered[j].accessed)
	})
	entries := make([]Entry, len(ordered))
	for i, si := range ordered {
		entries[i] = si.entry
	}
	return entries
}

// totalSize returns the sum of all tracked entry sizes.
func (s *storedImages) totalSize() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, si := range s.entries {
		total += si.entry.Size
	}
	return total
}

// sync reconciles the index with a fresh directory scan: entries whose files
// vanished are dropped, new files are adopted with their modtime as access
// stamp, and known entries keep their in-memory access order.
func (s *storedImages) sync(scanned []scannedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[Query]struct{}, len(scanned))
	for _, se := range scanned {
		seen[se.entry.Query] = struct{}{}
		if si, ok := s.entries[se.entry.Query]; ok {
			si.entry = se.entry
			continue
		}
		s.entries[se.entry.Query] = &storedImage{entry: se.entry, accessed: se.accessed}
	}
	for q := range s.entries {
		if _, ok := seen[q]; !ok {
			delete(s.entries, q)
		}
	}
}
