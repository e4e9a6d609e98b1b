package hfgetblob

import (
	"path/filepath"
	"strings"
)

// Key turns a download path relative to the download directory
// into the bucket key the file gets mirrored under.
func Key(rel string) string {
	return strings.TrimPrefix(filepath.ToSlash(rel), "/")
}
