// Package app wires the scanner, collapser, and marker together for the
// check and ignore commands. All dependencies are injected so the flows can
// run against in-memory filesystems and stubbed markers in tests.
package app

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/dropfix/internal/marker"
	"github.com/prettymuchbryce/dropfix/internal/report"
	"github.com/prettymuchbryce/dropfix/internal/scan"
)

// App holds the collaborators for a single run.
type App struct {
	Fs       afero.Fs
	Marker   marker.Marker
	Reporter report.Reporter
}

func (a *App) reporter() report.Reporter {
	if a.Reporter == nil {
		return report.Null{}
	}
	return a.Reporter
}

// CheckResult partitions every match by its marker state.
type CheckResult struct {
	Scan       *scan.Result
	Ignored    []scan.Match
	NotIgnored []scan.Match
	Errored    []scan.Match
}

// Total returns the number of classified matches.
func (r *CheckResult) Total() int {
	return len(r.Ignored) + len(r.NotIgnored) + len(r.Errored)
}

// IgnoreResult counts the outcome of marking every match.
type IgnoreResult struct {
	Scan      *scan.Result
	Processed int
	Failed    int
}

// scanTree runs the scanner and reports per-pattern results in the order the
// patterns were supplied.
func (a *App) scanTree(root string, patterns []string) (*scan.Result, error) {
	rep := a.reporter()

	result, err := scan.Run(a.Fs, root, patterns)
	if err != nil {
		return nil, err
	}

	for _, pattern := range result.Patterns {
		rep.SearchStarted(pattern)
		rep.SearchFinished(pattern, len(result.Groups[pattern]))
	}
	rep.AccessErrors(result.AccessErrors)

	return result, nil
}

// Check scans for matches and classifies each one by querying the marker.
// Per-path query failures land in the Errored partition; they never abort
// the run.
func (a *App) Check(root string, patterns []string) (*CheckResult, error) {
	scanResult, err := a.scanTree(root, patterns)
	if err != nil {
		return nil, err
	}

	rep := a.reporter()
	result := &CheckResult{Scan: scanResult}

	all := scanResult.All()
	for i, match := range all {
		ignored, err := a.Marker.Get(match.Path)
		switch {
		case err != nil:
			slog.Warn("cannot check directory", "path", match.Path, "error", err)
			result.Errored = append(result.Errored, match)
		case ignored:
			slog.Debug("ignored", "path", match.Path)
			result.Ignored = append(result.Ignored, match)
		default:
			slog.Debug("not ignored", "path", match.Path)
			result.NotIgnored = append(result.NotIgnored, match)
		}
		rep.Progress("Checking directories", i+1, len(all))
	}

	return result, nil
}

// Ignore scans for matches and sets the marker on each. Failures are
// counted and logged, and processing continues with the remaining paths.
// Passing a dry-run marker gives identical flow without any writes.
func (a *App) Ignore(root string, patterns []string) (*IgnoreResult, error) {
	scanResult, err := a.scanTree(root, patterns)
	if err != nil {
		return nil, err
	}

	rep := a.reporter()
	result := &IgnoreResult{Scan: scanResult}

	all := scanResult.All()
	for i, match := range all {
		if err := a.Marker.Set(match.Path); err != nil {
			slog.Warn("failed to mark directory", "path", match.Path, "error", err)
			result.Failed++
		} else {
			slog.Debug("marked", "path", match.Path)
			result.Processed++
		}
		rep.Progress("Marking directories", i+1, len(all))
	}

	return result, nil
}
