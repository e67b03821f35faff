package skycache

// Listener receives progress callbacks for a single download. Each method is
// called at most once per Resolve call that starts a download, always
// DownloadStarts first, then exactly one of DownloadCompletes or
// DownloadError.
type Listener interface {
	DownloadStarts()
	DownloadCompletes()
	DownloadError(err error)
}

// NopListener ignores all callbacks. It is the default when no listener is
// configured or passed.
type NopListener struct{}

func (NopListener) DownloadStarts()     {}
func (NopListener) DownloadCompletes()  {}
func (NopListener) DownloadError(error) {}
