package skycache

// Catalog describes an image server that produces cutout images for sky
// coordinates. Implementations are supplied by the caller; the cache only
// needs a URL to fetch and a short identifier for filenames.
type Catalog interface {
	// ID returns the short identifier used in cache filenames. It must not
	// contain underscores or path separators.
	ID() string

	// QueryURL returns the download URL for an image centered at the given
	// right ascension and declination, both in degrees.
	QueryURL(ra, dec float64) (string, error)

	// FieldOfView returns the angular size of the catalog's images in
	// degrees. Half the smaller axis is the default proximity radius used
	// for cache hits; see WithProximity to override it.
	FieldOfView() (ra, dec float64)
}
