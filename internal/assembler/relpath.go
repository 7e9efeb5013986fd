package assembler

import (
	"net/url"
	"path/filepath"
)

// Relativize returns the slash-separated path of toFilePath relative to the
// directory containing fromDocumentPath. The result is never absolute; if
// no relative path exists (mixed absolute and relative inputs) the file's
// base name is returned.
func Relativize(fromDocumentPath, toFilePath string) string {
	rel, err := filepath.Rel(filepath.Dir(fromDocumentPath), toFilePath)
	if err != nil {
		return filepath.Base(toFilePath)
	}
	return filepath.ToSlash(rel)
}

// escapeLink percent-encodes a slash-separated relative path for use as a
// markdown link target.
func escapeLink(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
