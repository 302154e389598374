package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/xlab/treeprint"
)

// Styles for console output
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // Cyan
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // Green
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))            // Red
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // Gray
	plainStyle  = lipgloss.NewStyle()
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cyanBorder  = panelStyle.BorderForeground(lipgloss.Color("6"))
	greenBorder = panelStyle.BorderForeground(lipgloss.Color("2"))
	redBorder   = panelStyle.BorderForeground(lipgloss.Color("1"))
)

const (
	okIcon    = "✓"
	missIcon  = "✗"
	errorIcon = "!"
)

// Console renders styled output to a writer.
type Console struct {
	w io.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) styleFor(tone Tone) lipgloss.Style {
	switch tone {
	case ToneOK:
		return okStyle
	case ToneError:
		return errorStyle
	case ToneDim:
		return dimStyle
	default:
		return plainStyle
	}
}

func (c *Console) borderFor(tone Tone) lipgloss.Style {
	switch tone {
	case ToneOK:
		return greenBorder
	case ToneError:
		return redBorder
	default:
		return cyanBorder
	}
}

// Panel renders a bordered panel with an optional title line.
func (c *Console) Panel(tone Tone, title string, lines ...string) {
	body := strings.Join(lines, "\n")
	if title != "" {
		title = titleStyle.Render(title)
		if body != "" {
			body = title + "\n" + body
		} else {
			body = title
		}
	}
	fmt.Fprintln(c.w, c.borderFor(tone).Render(body))
}

// KeyValueTable renders label/value rows, used for the configuration and
// summary panels.
func (c *Console) KeyValueTable(tone Tone, title string, rows [][2]string) {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, row := range rows {
		table.Append([]string{dimStyle.Render(row[0]), row[1]})
	}
	table.Render()
	c.Panel(tone, title, strings.TrimRight(buf.String(), "\n"))
}

// Groups renders collapsed name groups as a tree. Each top-level entry shows
// its nested count when matches were folded underneath it.
func (c *Console) Groups(tone Tone, heading string, groups []Group) {
	icon := okIcon
	switch tone {
	case ToneError:
		icon = errorIcon
	case ToneNeutral, ToneDim:
		icon = missIcon
	}
	style := c.styleFor(tone)

	tree := treeprint.NewWithRoot(titleStyle.Render(heading))
	for _, group := range groups {
		if len(group.Entries) == 0 {
			continue
		}
		branch := tree.AddBranch(group.Name)
		for _, entry := range group.Entries {
			line := style.Render(icon + " " + entry.Path)
			if entry.Nested > 0 {
				line += " " + dimStyle.Render(fmt.Sprintf("(+%d nested)", entry.Nested))
			}
			branch.AddNode(line)
		}
	}
	fmt.Fprint(c.w, tree.String())
}

// Notice prints a single dimmed line.
func (c *Console) Notice(text string) {
	fmt.Fprintln(c.w, dimStyle.Render(text))
}

// SearchStarted implements Reporter.
func (c *Console) SearchStarted(pattern string) {
	fmt.Fprintln(c.w, titleStyle.Render(fmt.Sprintf("Searching for '%s' directories...", pattern)))
}

// SearchFinished implements Reporter.
func (c *Console) SearchFinished(pattern string, found int) {
	if found == 0 {
		c.Notice(fmt.Sprintf("No '%s' directories found", pattern))
		return
	}
	fmt.Fprintln(c.w, okStyle.Render(fmt.Sprintf("Found %d '%s' directories", found, pattern)))
}

// AccessErrors implements Reporter.
func (c *Console) AccessErrors(count int) {
	if count == 0 {
		return
	}
	fmt.Fprintln(c.w, errorStyle.Render(fmt.Sprintf("Skipped %d unreadable subtrees", count)))
}

// Progress implements Reporter. Each update rewrites the current line; the
// final update ends it.
func (c *Console) Progress(label string, done, total int) {
	fmt.Fprintf(c.w, "\r%s %d/%d", label, done, total)
	if done == total {
		fmt.Fprintln(c.w)
	}
}
