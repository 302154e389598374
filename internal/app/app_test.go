package app

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/dropfix/internal/marker"
)

func abs(parts ...string) string {
	return string(filepath.Separator) + filepath.Join(parts...)
}

func newFs(t *testing.T, dirs ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, d := range dirs {
		if err := fsys.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): %v", d, err)
		}
	}
	return fsys
}

func TestCheck_PartitionCounts(t *testing.T) {
	root := abs("sync")
	dirs := []string{
		abs("sync", "a", "node_modules"),
		abs("sync", "b", "node_modules"),
		abs("sync", "c", ".venv"),
		abs("sync", "d", ".venv"),
	}
	fsys := newFs(t, dirs...)

	// 2 ignored, 1 not ignored, 1 error among the 4 matches
	stub := &marker.Stub{
		Values: map[string]bool{
			abs("sync", "a", "node_modules"): true,
			abs("sync", "c", ".venv"):        true,
		},
		GetErrs: map[string]error{
			abs("sync", "d", ".venv"): errors.New("attr command missing"),
		},
	}

	a := &App{Fs: fsys, Marker: stub}
	result, err := a.Check(root, []string{"node_modules", ".venv"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if len(result.Ignored) != 2 {
		t.Errorf("Ignored = %d, want 2", len(result.Ignored))
	}
	if len(result.NotIgnored) != 1 {
		t.Errorf("NotIgnored = %d, want 1", len(result.NotIgnored))
	}
	if len(result.Errored) != 1 {
		t.Errorf("Errored = %d, want 1", len(result.Errored))
	}
	if result.Total() != 4 {
		t.Errorf("Total = %d, want 4", result.Total())
	}
}

func TestCheck_ErrorsDoNotAbort(t *testing.T) {
	root := abs("sync")
	fsys := newFs(t,
		abs("sync", "a", ".conda"),
		abs("sync", "b", ".conda"),
		abs("sync", "c", ".conda"),
	)

	stub := &marker.Stub{
		GetErrs: map[string]error{
			abs("sync", "a", ".conda"): errors.New("boom"),
		},
		Values: map[string]bool{
			abs("sync", "c", ".conda"): true,
		},
	}

	a := &App{Fs: fsys, Marker: stub}
	result, err := a.Check(root, []string{".conda"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	// The failing path is first in walk order; the rest still classified.
	if result.Total() != 3 {
		t.Errorf("Total = %d, want 3", result.Total())
	}
	if len(result.Errored) != 1 || len(result.Ignored) != 1 || len(result.NotIgnored) != 1 {
		t.Errorf("partition = %d/%d/%d, want 1/1/1",
			len(result.Ignored), len(result.NotIgnored), len(result.Errored))
	}
}

func TestIgnore_MarksEveryMatch(t *testing.T) {
	root := abs("sync")
	dirs := []string{
		abs("sync", "p1", "node_modules"),
		abs("sync", "p2", "node_modules"),
		abs("sync", "p3", ".venv"),
	}
	fsys := newFs(t, dirs...)

	stub := &marker.Stub{}
	a := &App{Fs: fsys, Marker: stub}

	result, err := a.Ignore(root, []string{"node_modules", ".venv"})
	if err != nil {
		t.Fatalf("Ignore: %v", err)
	}

	if result.Processed != 3 || result.Failed != 0 {
		t.Errorf("Processed/Failed = %d/%d, want 3/0", result.Processed, result.Failed)
	}
	if len(stub.SetCalls) != 3 {
		t.Errorf("SetCalls = %v, want 3 calls", stub.SetCalls)
	}
}

func TestIgnore_FailuresAreCountedNotFatal(t *testing.T) {
	root := abs("sync")
	fsys := newFs(t,
		abs("sync", "p1", ".venv"),
		abs("sync", "p2", ".venv"),
	)

	stub := &marker.Stub{
		SetErrs: map[string]error{
			abs("sync", "p1", ".venv"): errors.New("permission denied"),
		},
	}
	a := &App{Fs: fsys, Marker: stub}

	result, err := a.Ignore(root, []string{".venv"})
	if err != nil {
		t.Fatalf("Ignore: %v", err)
	}

	if result.Processed != 1 || result.Failed != 1 {
		t.Errorf("Processed/Failed = %d/%d, want 1/1", result.Processed, result.Failed)
	}
}

func TestIgnore_DryRunNeverSets(t *testing.T) {
	root := abs("sync")
	dirs := []string{
		abs("sync", "p1", "node_modules"),
		abs("sync", "p2", "deep", "node_modules"),
	}
	fsys := newFs(t, dirs...)

	dry := marker.NewDryRun()
	a := &App{Fs: fsys, Marker: dry}

	result, err := a.Ignore(root, []string{"node_modules"})
	if err != nil {
		t.Fatalf("Ignore: %v", err)
	}

	// "Would process" count equals the match count, with zero real writes.
	if result.Processed != 2 || result.Failed != 0 {
		t.Errorf("Processed/Failed = %d/%d, want 2/0", result.Processed, result.Failed)
	}
	if len(dry.WouldSet()) != 2 {
		t.Errorf("WouldSet = %v, want 2 entries", dry.WouldSet())
	}
}

func TestIgnore_NothingFound(t *testing.T) {
	root := abs("sync")
	fsys := newFs(t, abs("sync", "src"))

	a := &App{Fs: fsys, Marker: &marker.Stub{}}
	result, err := a.Ignore(root, []string{"node_modules"})
	if err != nil {
		t.Fatalf("Ignore: %v", err)
	}
	if result.Processed != 0 || result.Failed != 0 {
		t.Errorf("Processed/Failed = %d/%d, want 0/0", result.Processed, result.Failed)
	}
}
