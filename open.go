package skycache

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open returns a reader over the entry's image bytes. Entries stored
// gzip-compressed (suffix ".fits.gz") are decompressed transparently.
func (c *Cache) Open(e Entry) (io.ReadCloser, error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("open cached image: %w", err)
	}
	if !strings.HasSuffix(e.Path, suffixGzFITS) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gunzip %s: %w", e.Path, err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (r *gzipReadCloser) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

func (r *gzipReadCloser) Close() error {
	err := r.zr.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}
