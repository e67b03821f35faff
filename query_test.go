package skycache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFilename(t *testing.T) {
	t.Parallel()

	q := NewQuery("dss2", 247.5, -33.2)
	assert.Equal(t, "dss2_163000.000_-331200.00.fits", q.Filename(suffixFITS))
	assert.Equal(t, "dss2_163000.000_-331200.00.fits.gz", q.Filename(suffixGzFITS))
}

func TestFilenameRoundTrip(t *testing.T) {
	t.Parallel()

	queries := []Query{
		NewQuery("dss2", 187.2792, 2.0525),
		NewQuery("2mass", 0, 0),
		NewQuery("sdss", 359.999999, -89.5),
		NewQuery("dss2", -0.0001, 0.0001),
	}
	for _, suffix := range knownSuffixes {
		for _, q := range queries {
			got, gotSuffix, ok := ParseFilename(q.Filename(suffix))
			require.True(t, ok, "decode %s", q.Filename(suffix))
			assert.Equal(t, q, got)
			assert.Equal(t, suffix, gotSuffix)
		}
	}
}

func TestParseFilenameRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"",
		"readme.txt",
		"dss2_163000.000_-331200.00",         // no known suffix
		"dss2_163000.000.fits",               // missing dec token
		"dss2_163000.000_-331200.00_x.fits",  // extra token
		"_163000.000_-331200.00.fits",        // empty catalog
		"dss2_993000.000_-331200.00.fits",    // RA hours out of range
		"dss2_163000.000_331200.00.fits",     // unsigned dec
		"dss2_abcdef.ghi_-331200.00.fits",    // garbage RA
		".fits",
	} {
		_, _, ok := ParseFilename(name)
		assert.False(t, ok, "ParseFilename(%q)", name)
	}
}

func TestIsNearby(t *testing.T) {
	t.Parallel()

	a := NewQuery("dss2", 10.0, 20.0)
	b := NewQuery("dss2", 10.008, 19.994)
	assert.True(t, a.IsNearby(b, 0.01))
	assert.True(t, b.IsNearby(a, 0.01), "IsNearby must be symmetric")
	assert.False(t, a.IsNearby(b, 0.005))

	// Same position, different catalog is never a match.
	other := NewQuery("2mass", 10.0, 20.0)
	assert.False(t, a.IsNearby(other, 1.0))
}

func TestIsNearbyWrapsAroundZero(t *testing.T) {
	t.Parallel()

	west := NewQuery("dss2", 359.9999, 0)
	east := NewQuery("dss2", 0.0001, 0)
	assert.True(t, west.IsNearby(east, 0.01))
	assert.True(t, east.IsNearby(west, 0.01))
	assert.False(t, west.IsNearby(east, 0.0001))
}
