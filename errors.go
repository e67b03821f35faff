package skycache

import "errors"

var (
	// ErrNotFound is returned when the image server reports that no image
	// exists for the requested coordinates. Some servers signal this with an
	// HTTP 200 text/html error page rather than an error status.
	ErrNotFound = errors.New("image not found in catalog")

	// ErrCacheClosed is returned by operations on a closed cache.
	ErrCacheClosed = errors.New("cache is closed")
)
