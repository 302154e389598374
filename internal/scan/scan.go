// Package scan walks a sync root and collects directories whose base name
// matches one of the configured target patterns.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/dropfix/internal/pathutil"
)

// Match is a directory whose base name matched a target pattern.
type Match struct {
	// Path is the absolute, cleaned path of the directory.
	Path string
	// Name is the directory's base name.
	Name string
	// Depth is the number of path components.
	Depth int
}

// Result groups matches by the pattern that claimed them.
type Result struct {
	// Patterns preserves the order in which target patterns were supplied.
	Patterns []string
	// Groups maps each pattern to its matches in discovery order.
	Groups map[string][]Match
	// AccessErrors counts subtrees skipped due to permission or I/O errors.
	AccessErrors int
}

// Total returns the number of matches across all groups.
func (r *Result) Total() int {
	total := 0
	for _, matches := range r.Groups {
		total += len(matches)
	}
	return total
}

// All returns every match, grouped in pattern order.
func (r *Result) All() []Match {
	all := make([]Match, 0, r.Total())
	for _, pattern := range r.Patterns {
		all = append(all, r.Groups[pattern]...)
	}
	return all
}

// MatchName returns the first pattern that matches the given base name.
// Literal names (no glob metacharacters) behave as exact matches.
func MatchName(patterns []string, name string) (string, bool) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			// Patterns are validated before scanning; an error here means
			// the caller skipped validation.
			slog.Debug("skipping invalid pattern", "pattern", pattern, "error", err)
			continue
		}
		if ok {
			return pattern, true
		}
	}
	return "", false
}

// ValidatePatterns rejects malformed glob patterns up front so the walk
// never has to deal with them.
func ValidatePatterns(patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("no target directory names given")
	}
	for _, pattern := range patterns {
		if _, err := doublestar.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("invalid directory pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Run walks the tree under root and collects every directory whose base name
// matches a pattern. The walk is a lexically ordered pre-order traversal, so
// results are deterministic for a given filesystem state. Matched
// directories are still descended into, so nested matches are found too.
// Unreadable subtrees are skipped and counted, never fatal. Directory
// symlinks are not followed (the walk uses lstat), which also rules out
// symlink cycles.
func Run(fsys afero.Fs, root string, patterns []string) (*Result, error) {
	if err := ValidatePatterns(patterns); err != nil {
		return nil, err
	}

	root = filepath.Clean(root)
	if ok, err := afero.DirExists(fsys, root); err != nil {
		return nil, fmt.Errorf("checking root %s: %w", root, err)
	} else if !ok {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	result := &Result{
		Patterns: patterns,
		Groups:   make(map[string][]Match, len(patterns)),
	}
	seen := make(map[string]struct{})

	walkErr := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			result.AccessErrors++
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		cleaned := filepath.Clean(path)
		if cleaned == root {
			return nil
		}

		name := filepath.Base(cleaned)
		pattern, ok := MatchName(patterns, name)
		if !ok {
			return nil
		}
		if _, dup := seen[cleaned]; dup {
			return nil
		}
		seen[cleaned] = struct{}{}

		slog.Debug("matched directory", "path", cleaned, "pattern", pattern)
		result.Groups[pattern] = append(result.Groups[pattern], Match{
			Path:  cleaned,
			Name:  name,
			Depth: pathutil.Depth(cleaned),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	return result, nil
}
