package filesystem

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ResolvePath converts a file:// URI or a bare path into a clean local path.
// Bare paths pass through apart from cleaning.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil && u.Path != "" {
			return filepath.Clean(filepath.FromSlash(u.Path))
		}
		return filepath.Clean(strings.TrimPrefix(uri, "file://"))
	}
	return filepath.Clean(uri)
}
