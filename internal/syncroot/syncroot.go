// Package syncroot locates the sync client's managed folder by probing a
// small list of well-known locations.
package syncroot

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// ErrNotFound means no candidate location exists; the user has to pass
// --path explicitly.
var ErrNotFound = errors.New("sync root not found in common locations")

// Candidates returns the well-known locations to probe, most likely first.
// On Windows the profile environment variables are consulted as well.
func Candidates(home, goos string, getenv func(string) string) []string {
	candidates := []string{
		filepath.Join(home, "Dropbox"),
		filepath.Join(home, "Documents", "Dropbox"),
	}

	if goos == "windows" {
		if profile := getenv("USERPROFILE"); profile != "" {
			candidates = append(candidates, filepath.Join(profile, "Dropbox"))
		}
		drive, path := getenv("HOMEDRIVE"), getenv("HOMEPATH")
		if drive != "" || path != "" {
			candidates = append(candidates, filepath.Join(drive+path, "Dropbox"))
		}
	}

	return candidates
}

// Find probes candidates in order and returns the first that exists and is a
// directory. Probe errors are treated as "not here" and the search moves on.
func Find(fsys afero.Fs, candidates []string) (string, error) {
	for _, candidate := range candidates {
		ok, err := afero.DirExists(fsys, candidate)
		if err != nil {
			slog.Debug("cannot probe candidate", "path", candidate, "error", err)
			continue
		}
		if ok {
			slog.Info("found sync root", "path", candidate)
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Detect auto-detects the sync root on the current host.
func Detect(fsys afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNotFound
	}
	return Find(fsys, Candidates(home, runtime.GOOS, os.Getenv))
}
