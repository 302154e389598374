// Package marker reads and writes the sync client's ignore attribute on
// directories. The attribute lives out-of-band: an extended attribute on
// POSIX systems, an NTFS alternate data stream on Windows. All access goes
// through the platform's attribute command so the tool needs no cgo or
// elevated APIs.
package marker

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Attribute is the name of the marker attribute / stream the sync client
// honors.
const Attribute = "com.dropbox.ignored"

// ignoredValue is the attribute value that means "excluded from sync".
const ignoredValue = "1"

// Platform selects which attribute command implementation to use.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "darwin"
	PlatformWindows Platform = "windows"
)

// Detect returns the Platform for the current host.
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMacOS
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// Marker gets and sets the ignore attribute on a single directory.
type Marker interface {
	// Get reports whether the stored attribute value equals "1".
	// A clean non-zero exit from the attribute command (attribute absent
	// or unreadable value) is (false, nil); failing to run the command at
	// all is an error.
	Get(path string) (bool, error)

	// Set writes the attribute value "1". Any failure, including a
	// non-zero exit, is returned as an error so the caller can count it
	// and continue with remaining paths.
	Set(path string) error
}

// Runner executes an attribute command and returns its stdout. The path is
// always passed as a discrete argument, never interpolated into a shell
// string.
type Runner func(name string, args ...string) (string, error)

func runCommand(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

type execMarker struct {
	platform Platform
	run      Runner
}

// New creates a Marker backed by the platform's attribute command.
func New(platform Platform) Marker {
	return &execMarker{platform: platform, run: runCommand}
}

// NewWithRunner creates a Marker with a custom command runner. Used in tests
// to stub out command execution.
func NewWithRunner(platform Platform, run Runner) Marker {
	return &execMarker{platform: platform, run: run}
}

func (m *execMarker) Get(path string) (bool, error) {
	name, args := m.getCommand(path)
	out, err := m.run(name, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The command ran but the attribute is absent or unreadable.
			return false, nil
		}
		return false, fmt.Errorf("querying %s on %s: %w", Attribute, path, err)
	}
	return strings.TrimSpace(out) == ignoredValue, nil
}

func (m *execMarker) Set(path string) error {
	name, args := m.setCommand(path)
	if _, err := m.run(name, args...); err != nil {
		return fmt.Errorf("setting %s on %s: %w", Attribute, path, err)
	}
	return nil
}

func (m *execMarker) getCommand(path string) (string, []string) {
	switch m.platform {
	case PlatformWindows:
		script := fmt.Sprintf(
			"Get-Content -Path '%s' -Stream %s -ErrorAction SilentlyContinue",
			escapePowerShell(path), Attribute,
		)
		return "powershell", []string{"-NoProfile", "-Command", script}
	case PlatformMacOS:
		return "xattr", []string{"-p", Attribute, path}
	default:
		return "attr", []string{"-q", "-g", Attribute, path}
	}
}

func (m *execMarker) setCommand(path string) (string, []string) {
	switch m.platform {
	case PlatformWindows:
		script := fmt.Sprintf(
			"Set-Content -Path '%s' -Stream %s -Value %s",
			escapePowerShell(path), Attribute, ignoredValue,
		)
		return "powershell", []string{"-NoProfile", "-Command", script}
	case PlatformMacOS:
		return "xattr", []string{"-w", Attribute, ignoredValue, path}
	default:
		return "attr", []string{"-s", Attribute, "-V", ignoredValue, path}
	}
}

// escapePowerShell escapes a path for a PowerShell single-quoted string
// (single quotes are doubled). The script itself is still passed to
// powershell as a single argv element.
func escapePowerShell(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
