package skycache

import "sync"

// imagesInProgress is the set of queries with an active download. Membership
// is the sole guard against duplicate concurrent fetches; it is not a future
// registry and holds no results.
type imagesInProgress struct {
	mu  sync.Mutex
	set map[Query]struct{}
}

func newImagesInProgress() *imagesInProgress {
	return &imagesInProgress{set: make(map[Query]struct{})}
}

// markIfAbsent adds q and reports true, or reports false if q was already
// marked. Check and insert happen under one lock so two racing resolvers
// cannot both claim the download.
func (p *imagesInProgress) markIfAbsent(q Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.set[q]; ok {
		return false
	}
	p.set[q] = struct{}{}
	return true
}

func (p *imagesInProgress) remove(q Query) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.set, q)
}

func (p *imagesInProgress) contains(q Query) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.set[q]
	return ok
}
