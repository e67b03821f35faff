package skycache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const downloadBufferSize = 32 * 1024

// download fetches the image for q from the catalog's server and stores it
// under the deterministic filename for q. The suffix is chosen from the
// response content type.
func (c *Cache) download(ctx context.Context, cat Catalog, q Query) (Entry, error) {
	rawURL, err := cat.QueryURL(q.RA, q.Dec)
	if err != nil {
		return Entry{}, fmt.Errorf("build %s query url: %w", cat.ID(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("build %s request: %w", cat.ID(), err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("fetch %s image: %w", cat.ID(), err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Entry{}, fmt.Errorf("fetch %s image: unexpected status %s", cat.ID(), resp.Status)
	}

	suffix, err := classifySuffix(resp.Header.Get("Content-Type"), resp.Request.URL.Path)
	if err != nil {
		return Entry{}, fmt.Errorf("fetch %s image: %w", cat.ID(), err)
	}

	path := filepath.Join(c.dir, q.Filename(suffix))
	size, err := c.writeLocked(ctx, path, resp.Body)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Query: q, Path: path, Size: size}, nil
}

// writeLocked streams body into path while holding an exclusive advisory
// lock on the destination. The in-progress registry already prevents two
// resolvers from racing here; the lock defends against other processes
// cooperating on the same directory. Lock and file release on every exit
// path; a partial file left by a failed write is removed.
func (c *Cache) writeLocked(ctx context.Context, path string, body io.Reader) (int64, error) {
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			c.log().Warn("unlock cache file", "path", path, "error", err)
		}
	}()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}

	written, err := copyWithContext(ctx, f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			c.log().Warn("remove partial download", "path", path, "error", rmErr)
		}
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return written, nil
}

// copyWithContext copies src to dst with a fixed-size buffer, checking for
// cancellation between reads.
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	var copied int64
	buf := make([]byte, downloadBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		n, err := src.Read(buf)
		if n > 0 {
			w, wErr := dst.Write(buf[:n])
			copied += int64(w)
			if wErr != nil {
				return copied, wErr
			}
			if w < n {
				return copied, io.ErrShortWrite
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return copied, nil
			}
			return copied, err
		}
	}
}
