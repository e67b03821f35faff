// Command skycache fetches catalog images for sky coordinates into a local
// cache directory, downloading only what is not already cached.
//
// The catalog is described on the command line as a URL template with {ra}
// and {dec} placeholders (decimal degrees):
//
//	skycache -dir /var/cache/skyimages -catalog dss2 \
//	    -url 'https://archive.example.org/dss_search?r={ra}&d={dec}' \
//	    -fov 0.25 187.2792,2.0525 10.6847,41.2687
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/astroshed/skycache"
)

type config struct {
	dir      string
	catalog  string
	url      string
	fov      float64
	maxBytes int64
	timeout  time.Duration
	workers  int
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.dir, "dir", "", "cache directory (required)")
	flag.StringVar(&cfg.catalog, "catalog", "", "short catalog identifier used in filenames (required)")
	flag.StringVar(&cfg.url, "url", "", "query URL template with {ra} and {dec} placeholders (required)")
	flag.Float64Var(&cfg.fov, "fov", 0.25, "catalog field of view in degrees")
	flag.Int64Var(&cfg.maxBytes, "max-bytes", skycache.DefaultMaxCacheBytes, "cache byte budget")
	flag.DurationVar(&cfg.timeout, "timeout", 2*time.Minute, "per-run timeout")
	flag.IntVar(&cfg.workers, "workers", 4, "concurrent downloads")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	if err := run(cfg, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "skycache:", err)
		os.Exit(1)
	}
}

func run(cfg config, args []string) error {
	if cfg.dir == "" || cfg.catalog == "" || cfg.url == "" {
		return fmt.Errorf("-dir, -catalog and -url are required")
	}
	if len(args) == 0 {
		return fmt.Errorf("no coordinates given (expected ra,dec pairs in decimal degrees)")
	}

	coords := make([]skycache.Coordinates, 0, len(args))
	for _, arg := range args {
		co, err := parseCoordinates(arg)
		if err != nil {
			return err
		}
		coords = append(coords, co)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c, err := skycache.New(cfg.dir,
		skycache.WithMaxCacheBytes(cfg.maxBytes),
		skycache.WithLogger(logger),
		skycache.WithHTTPClient(&http.Client{Timeout: cfg.timeout}),
		skycache.WithPrefetchConcurrency(cfg.workers),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	cat := urlCatalog{id: cfg.catalog, template: cfg.url, fov: cfg.fov}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	if err := c.Prefetch(ctx, cat, coords...); err != nil {
		return err
	}

	for _, co := range coords {
		entry, ok := c.Find(cat, co.RA, co.Dec)
		if !ok {
			return fmt.Errorf("image for %.4f,%.4f missing after fetch", co.RA, co.Dec)
		}
		fmt.Println(entry.Path)
	}
	return nil
}

func parseCoordinates(s string) (skycache.Coordinates, error) {
	raStr, decStr, ok := strings.Cut(s, ",")
	if !ok {
		return skycache.Coordinates{}, fmt.Errorf("invalid coordinates %q (expected ra,dec)", s)
	}
	ra, err := strconv.ParseFloat(raStr, 64)
	if err != nil {
		return skycache.Coordinates{}, fmt.Errorf("invalid right ascension %q", raStr)
	}
	dec, err := strconv.ParseFloat(decStr, 64)
	if err != nil {
		return skycache.Coordinates{}, fmt.Errorf("invalid declination %q", decStr)
	}
	return skycache.Coordinates{RA: ra, Dec: dec}, nil
}

// urlCatalog implements skycache.Catalog from a URL template.
type urlCatalog struct {
	id       string
	template string
	fov      float64
}

func (u urlCatalog) ID() string { return u.id }

func (u urlCatalog) QueryURL(ra, dec float64) (string, error) {
	url := strings.ReplaceAll(u.template, "{ra}", strconv.FormatFloat(ra, 'f', -1, 64))
	url = strings.ReplaceAll(url, "{dec}", strconv.FormatFloat(dec, 'f', -1, 64))
	return url, nil
}

func (u urlCatalog) FieldOfView() (float64, float64) { return u.fov, u.fov }
