package skycache

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Entry describes one cached image file: the query it answers, the absolute
// file path, and the file size in bytes.
//
// An Entry is a snapshot. The backing file may be deleted concurrently;
// callers holding an Entry across time should re-check existence before use.
type Entry struct {
	Query Query
	Path  string
	Size  int64
}

// scannedEntry pairs a decoded Entry with the modtime used to seed its
// access order after a restart.
type scannedEntry struct {
	entry    Entry
	accessed time.Time
}

// scanDir reconstructs entries from the cache directory. Files whose names
// do not decode are not cache entries and are skipped, never an error.
func scanDir(dir string, logger *slog.Logger) ([]scannedEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]scannedEntry, 0, len(des))
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		q, _, ok := ParseFilename(de.Name())
		if !ok {
			logger.Debug("ignoring unrecognized file in cache dir", "name", de.Name())
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Deleted between ReadDir and stat.
			continue
		}
		entries = append(entries, scannedEntry{
			entry: Entry{
				Query: q,
				Path:  filepath.Join(dir, de.Name()),
				Size:  info.Size(),
			},
			accessed: info.ModTime(),
		})
	}
	return entries, nil
}
