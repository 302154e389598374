package syncroot

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestCandidates(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "user")

	t.Run("posix", func(t *testing.T) {
		got := Candidates(home, "linux", func(string) string { return "" })
		want := []string{
			filepath.Join(home, "Dropbox"),
			filepath.Join(home, "Documents", "Dropbox"),
		}
		if len(got) != len(want) {
			t.Fatalf("Candidates = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Candidates[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("windows adds profile locations", func(t *testing.T) {
		env := map[string]string{
			"USERPROFILE": `C:\Users\user`,
			"HOMEDRIVE":   "C:",
			"HOMEPATH":    `\Users\user`,
		}
		got := Candidates(home, "windows", func(k string) string { return env[k] })
		if len(got) != 4 {
			t.Fatalf("Candidates = %v, want 4 entries", got)
		}
		if got[2] != filepath.Join(`C:\Users\user`, "Dropbox") {
			t.Errorf("Candidates[2] = %q", got[2])
		}
	})

	t.Run("windows without profile env", func(t *testing.T) {
		got := Candidates(home, "windows", func(string) string { return "" })
		if len(got) != 2 {
			t.Fatalf("Candidates = %v, want 2 entries", got)
		}
	})
}

func TestFind(t *testing.T) {
	first := filepath.Join(string(filepath.Separator), "home", "user", "Dropbox")
	second := filepath.Join(string(filepath.Separator), "home", "user", "Documents", "Dropbox")
	candidates := []string{first, second}

	t.Run("first existing candidate wins", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		for _, c := range candidates {
			if err := fsys.MkdirAll(c, 0o755); err != nil {
				t.Fatal(err)
			}
		}

		got, err := Find(fsys, candidates)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if got != first {
			t.Errorf("Find = %q, want %q", got, first)
		}
	})

	t.Run("falls through to later candidates", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll(second, 0o755); err != nil {
			t.Fatal(err)
		}

		got, err := Find(fsys, candidates)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if got != second {
			t.Errorf("Find = %q, want %q", got, second)
		}
	})

	t.Run("a file is not a sync root", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, first, []byte("not a dir"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Find(fsys, candidates); !errors.Is(err, ErrNotFound) {
			t.Errorf("Find err = %v, want ErrNotFound", err)
		}
	})

	t.Run("nothing exists", func(t *testing.T) {
		if _, err := Find(afero.NewMemMapFs(), candidates); !errors.Is(err, ErrNotFound) {
			t.Errorf("Find err = %v, want ErrNotFound", err)
		}
	})
}
