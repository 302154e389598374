// Package report renders progress and results to the console. All output
// goes through an injected writer so the core packages stay free of I/O
// side effects.
package report

// Reporter receives progress events while a scan or marking run executes.
// Implementations must tolerate being called from a single goroutine in
// processing order; output order is expected to match.
type Reporter interface {
	// SearchStarted announces that matching for a pattern begins.
	SearchStarted(pattern string)

	// SearchFinished reports how many directories matched a pattern.
	SearchFinished(pattern string, found int)

	// AccessErrors reports how many subtrees were skipped as unreadable.
	AccessErrors(count int)

	// Progress reports incremental per-path progress for a labeled phase.
	Progress(label string, done, total int)
}

// Null is a Reporter that discards everything. Use it in tests that only
// care about returned data.
type Null struct{}

func (Null) SearchStarted(pattern string)             {}
func (Null) SearchFinished(pattern string, found int) {}
func (Null) AccessErrors(count int)                   {}
func (Null) Progress(label string, done, total int)   {}

// Tone selects the styling for a rendered line or value.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneOK
	ToneWarn
	ToneError
	ToneDim
)

// Entry is one collapsed top-level path with its nested count.
type Entry struct {
	Path   string
	Nested int
}

// Group is the collapsed view of one name group for rendering.
type Group struct {
	Name    string
	Entries []Entry
}
