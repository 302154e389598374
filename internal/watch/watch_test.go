package watch

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/dropfix/internal/marker"
)

func abs(parts ...string) string {
	return string(filepath.Separator) + filepath.Join(parts...)
}

func newWatcher(t *testing.T, fsys afero.Fs, root string, patterns []string, m marker.Marker, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := New(fsys, root, patterns, m, debounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })
	return w
}

func TestNew_RejectsBadPatterns(t *testing.T) {
	if _, err := New(afero.NewMemMapFs(), abs("sync"), []string{"[bad"}, &marker.Stub{}, 0); err == nil {
		t.Error("expected error for malformed pattern")
	}
	if _, err := New(afero.NewMemMapFs(), abs("sync"), nil, &marker.Stub{}, 0); err == nil {
		t.Error("expected error for empty pattern list")
	}
}

func TestMark_SetsAttribute(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := abs("sync", "proj", "node_modules")
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}

	stub := &marker.Stub{}
	w := newWatcher(t, fsys, abs("sync"), []string{"node_modules"}, stub, time.Millisecond)

	w.mark(path)

	if len(stub.SetCalls) != 1 || stub.SetCalls[0] != path {
		t.Errorf("SetCalls = %v, want [%s]", stub.SetCalls, path)
	}
}

func TestMark_SkipsVanishedDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	stub := &marker.Stub{}
	w := newWatcher(t, fsys, abs("sync"), []string{"node_modules"}, stub, time.Millisecond)

	w.mark(abs("sync", "gone", "node_modules"))

	if len(stub.SetCalls) != 0 {
		t.Errorf("SetCalls = %v, want none", stub.SetCalls)
	}
}

func TestSchedule_DebouncesRepeatedEvents(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := abs("sync", "proj", ".venv")
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}

	stub := &marker.Stub{}
	// Debounce long enough that re-arming happens before the timer fires.
	w := newWatcher(t, fsys, abs("sync"), []string{".venv"}, stub, 100*time.Millisecond)

	// Re-arming the same path must leave a single pending timer.
	w.schedule(path)
	w.schedule(path)
	w.schedule(path)

	w.mu.Lock()
	pending := len(w.timers)
	w.mu.Unlock()
	if pending != 1 {
		t.Errorf("pending timers = %d, want 1", pending)
	}

	// Drain the fired timer and mark, as the run loop would.
	select {
	case fired := <-w.ready:
		w.mark(fired)
	case <-time.After(time.Second):
		t.Fatal("debounce timer never fired")
	}

	if len(stub.SetCalls) != 1 {
		t.Errorf("SetCalls = %v, want exactly one", stub.SetCalls)
	}
}

func TestAddTree_SchedulesExistingMatches(t *testing.T) {
	fsys := afero.NewMemMapFs()
	matching := abs("sync", "incoming", "node_modules")
	plain := abs("sync", "incoming", "src")
	for _, d := range []string{matching, plain} {
		if err := fsys.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	stub := &marker.Stub{}
	w := newWatcher(t, fsys, abs("sync"), []string{"node_modules"}, stub, time.Millisecond)

	if err := w.addTree(abs("sync", "incoming")); err != nil {
		t.Fatalf("addTree: %v", err)
	}

	select {
	case fired := <-w.ready:
		if fired != matching {
			t.Errorf("fired = %q, want %q", fired, matching)
		}
	case <-time.After(time.Second):
		t.Fatal("matching directory was never scheduled")
	}

	// The non-matching sibling must not be scheduled.
	select {
	case fired := <-w.ready:
		t.Errorf("unexpected schedule for %q", fired)
	case <-time.After(20 * time.Millisecond):
	}
}
