// Package hierarchy collapses a flat set of matched directory paths into the
// top-level entries a user actually cares about. A match nested underneath
// another match of the same name group is folded into its ancestor's nested
// count instead of being listed on its own.
package hierarchy

import (
	"path/filepath"
	"sort"

	"github.com/prettymuchbryce/dropfix/internal/pathutil"
)

// Result holds the collapsed view of one name group.
//
// Every deduplicated input path is either present in TopLevel or counted
// under exactly one TopLevel entry, so
// len(TopLevel) + sum(Nested) == number of unique inputs.
type Result struct {
	// TopLevel lists paths with no matched ancestor in the group, ordered
	// shallowest first (ties broken lexicographically).
	TopLevel []string

	// Nested maps each top-level path to the number of group members that
	// are strict descendants of it.
	Nested map[string]int
}

// Organize collapses the paths of a single name group.
//
// Paths are deduplicated by their cleaned form, then processed in ascending
// depth order so that any ancestor is confirmed top-level before its
// descendants are examined. Each path is checked against the confirmed
// top-level set with a segment-wise ancestor test; a single pass suffices
// because of the depth ordering.
func Organize(paths []string) Result {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		cleaned := filepath.Clean(p)
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		unique = append(unique, cleaned)
	}

	sort.Slice(unique, func(i, j int) bool {
		di, dj := pathutil.Depth(unique[i]), pathutil.Depth(unique[j])
		if di != dj {
			return di < dj
		}
		return unique[i] < unique[j]
	})

	result := Result{Nested: make(map[string]int, len(unique))}
	for _, path := range unique {
		nested := false
		for _, top := range result.TopLevel {
			if pathutil.IsAncestor(top, path) {
				result.Nested[top]++
				nested = true
				break
			}
		}
		if !nested {
			result.TopLevel = append(result.TopLevel, path)
			result.Nested[path] = 0
		}
	}

	return result
}

// Size returns the number of unique paths the result accounts for.
func (r Result) Size() int {
	total := len(r.TopLevel)
	for _, n := range r.Nested {
		total += n
	}
	return total
}
