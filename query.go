package skycache

import (
	"fmt"
	"math"
	"strings"

	"github.com/astroshed/skycache/internal/sexagesimal"
)

// Query identifies a desired image: a catalog plus a sky position.
//
// Query is an immutable value type with structural equality. Coordinates are
// held at the precision of the filename codec, so a Query survives an
// encode/decode round trip through its cache filename unchanged.
type Query struct {
	CatalogID string
	RA        float64 // degrees, [0, 360)
	Dec       float64 // degrees
}

// NewQuery builds a Query with coordinates normalized to codec precision
// (RA to 0.001 s of time, Dec to 0.01 arcsec).
func NewQuery(catalogID string, ra, dec float64) Query {
	return Query{
		CatalogID: catalogID,
		RA:        sexagesimal.RoundHMS(ra),
		Dec:       sexagesimal.RoundDMS(dec),
	}
}

// Filename returns the deterministic cache filename for the query with the
// given suffix, e.g. "dss2_163028.000_-331200.00.fits".
func (q Query) Filename(suffix string) string {
	return fmt.Sprintf("%s_%s_%s%s",
		q.CatalogID, sexagesimal.FormatHMS(q.RA), sexagesimal.FormatDMS(q.Dec), suffix)
}

// ParseFilename decodes a cache filename back into the Query and suffix it
// was produced from. ok is false for any filename this package did not
// write; such files are simply not cache entries.
func ParseFilename(name string) (q Query, suffix string, ok bool) {
	for _, s := range knownSuffixes {
		if strings.HasSuffix(name, s) {
			suffix = s
			break
		}
	}
	if suffix == "" {
		return Query{}, "", false
	}
	parts := strings.Split(strings.TrimSuffix(name, suffix), "_")
	if len(parts) != 3 || parts[0] == "" {
		return Query{}, "", false
	}
	ra, err := sexagesimal.ParseHMS(parts[1])
	if err != nil {
		return Query{}, "", false
	}
	dec, err := sexagesimal.ParseDMS(parts[2])
	if err != nil {
		return Query{}, "", false
	}
	return Query{CatalogID: parts[0], RA: ra, Dec: dec}, suffix, true
}

// IsNearby reports whether both queries reference the same catalog and lie
// within maxDeg of each other on each axis. Deltas take the shorter arc
// around the 0°/360° wraparound.
func (q Query) IsNearby(other Query, maxDeg float64) bool {
	if q.CatalogID != other.CatalogID {
		return false
	}
	return angularDelta(q.RA, other.RA) <= maxDeg && angularDelta(q.Dec, other.Dec) <= maxDeg
}

// angularDelta returns the shorter-arc absolute difference of two angles in
// degrees.
func angularDelta(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
