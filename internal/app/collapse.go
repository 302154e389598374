package app

import (
	"github.com/prettymuchbryce/dropfix/internal/hierarchy"
	"github.com/prettymuchbryce/dropfix/internal/report"
	"github.com/prettymuchbryce/dropfix/internal/scan"
)

// Collapse groups matches by base name and folds nested matches under their
// nearest matched ancestor. Groups appear in first-seen order; each group is
// collapsed independently, so a node_modules under a .venv stays visible.
func Collapse(matches []scan.Match) []report.Group {
	var order []string
	byName := make(map[string][]string)
	for _, match := range matches {
		if _, ok := byName[match.Name]; !ok {
			order = append(order, match.Name)
		}
		byName[match.Name] = append(byName[match.Name], match.Path)
	}

	groups := make([]report.Group, 0, len(order))
	for _, name := range order {
		collapsed := hierarchy.Organize(byName[name])
		entries := make([]report.Entry, 0, len(collapsed.TopLevel))
		for _, top := range collapsed.TopLevel {
			entries = append(entries, report.Entry{Path: top, Nested: collapsed.Nested[top]})
		}
		groups = append(groups, report.Group{Name: name, Entries: entries})
	}
	return groups
}

// EntrySummary is one collapsed path in a machine-readable summary.
type EntrySummary struct {
	Path   string `yaml:"path"`
	Nested int    `yaml:"nested,omitempty"`
}

// GroupSummary is one name group in a machine-readable summary.
type GroupSummary struct {
	Name    string         `yaml:"name"`
	Entries []EntrySummary `yaml:"entries"`
}

// CheckSummary is the yaml-encodable result of a check run.
type CheckSummary struct {
	Root            string         `yaml:"root"`
	Total           int            `yaml:"total"`
	IgnoredCount    int            `yaml:"ignored_count"`
	NotIgnoredCount int            `yaml:"not_ignored_count"`
	ErrorCount      int            `yaml:"error_count"`
	AccessErrors    int            `yaml:"access_errors"`
	Ignored         []GroupSummary `yaml:"ignored,omitempty"`
	NotIgnored      []GroupSummary `yaml:"not_ignored,omitempty"`
	Errors          []GroupSummary `yaml:"errors,omitempty"`
}

func summarizeGroups(groups []report.Group) []GroupSummary {
	summaries := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		entries := make([]EntrySummary, 0, len(group.Entries))
		for _, entry := range group.Entries {
			entries = append(entries, EntrySummary{Path: entry.Path, Nested: entry.Nested})
		}
		summaries = append(summaries, GroupSummary{Name: group.Name, Entries: entries})
	}
	return summaries
}

// Summary builds the machine-readable view of a check result. Subtrees the
// scan could not read are reported as a count so a consumer can tell the
// result may be incomplete.
func (r *CheckResult) Summary(root string) CheckSummary {
	s := CheckSummary{
		Root:            root,
		Total:           r.Total(),
		IgnoredCount:    len(r.Ignored),
		NotIgnoredCount: len(r.NotIgnored),
		ErrorCount:      len(r.Errored),
		Ignored:         summarizeGroups(Collapse(r.Ignored)),
		NotIgnored:      summarizeGroups(Collapse(r.NotIgnored)),
		Errors:          summarizeGroups(Collapse(r.Errored)),
	}
	if r.Scan != nil {
		s.AccessErrors = r.Scan.AccessErrors
	}
	return s
}
