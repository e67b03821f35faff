package skycache

import (
	"fmt"
	"strings"
)

// File suffixes chosen from the response content type. Unknown content
// defaults to suffixTemp so the bytes are kept but never misread as FITS.
const (
	suffixFITS   = ".fits"
	suffixGzFITS = ".fits.gz"
	suffixHFITS  = ".hfits"
	suffixTemp   = ".tmp"
)

// Longest suffixes first so ".fits.gz" is not mistaken for ".fits".
var knownSuffixes = []string{suffixGzFITS, suffixHFITS, suffixFITS, suffixTemp}

// notFoundPathFragment identifies the search endpoint of a server known to
// report missing images as an HTTP 200 text/html error page.
const notFoundPathFragment = "dss_search"

// classifySuffix maps a response content type to a cache file suffix.
// A text/html response from the known misbehaving search endpoint is a
// definitive "image not found".
func classifySuffix(contentType, urlPath string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "application/hfits", "image/x-hfits":
		return suffixHFITS, nil
	case "image/x-fits", "image/x-gfits":
		return suffixGzFITS, nil
	case "application/fits", "application/x-fits", "image/fits":
		return suffixFITS, nil
	case "text/html":
		if strings.Contains(urlPath, notFoundPathFragment) {
			return "", fmt.Errorf("%s answered with an error page: %w", urlPath, ErrNotFound)
		}
	}
	return suffixTemp, nil
}
