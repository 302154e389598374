package pathutil

import (
	"path/filepath"
	"strings"
)

// Segments splits a cleaned path into its components.
// The root of an absolute path is an empty leading segment on Unix
// ("/a/b" → ["", "a", "b"]), which keeps prefix comparison correct.
func Segments(path string) []string {
	return strings.Split(filepath.Clean(path), string(filepath.Separator))
}

// Depth returns the number of path components.
func Depth(path string) int {
	return len(Segments(path))
}

// IsAncestor reports whether ancestor is a proper ancestor of path.
// Comparison is segment-wise, so "/foo" is not an ancestor of "/foobar".
func IsAncestor(ancestor, path string) bool {
	a := Segments(ancestor)
	p := Segments(path)
	if len(a) >= len(p) {
		return false
	}
	for i := range a {
		if a[i] != p[i] {
			return false
		}
	}
	return true
}
