package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/tframe/internal/theme"
)

const (
	dropdownMaxWidth = 64
	dropdownMinWidth = 24
)

// Dropdown is the history list opened from the toolbar toggle. It renders
// right-aligned directly below the toolbar.
type Dropdown struct {
	entries []string
	current int // index of the current page in entries
	cursor  int
	open    bool
	top     int
	width   int
}

// NewDropdown creates a closed dropdown whose first row is at top.
func NewDropdown(top int) Dropdown {
	return Dropdown{top: top}
}

// SetEntries replaces the listed URLs, most recent first. current marks
// the page being shown.
func (d *Dropdown) SetEntries(entries []string, current int) {
	d.entries = append(d.entries[:0], entries...)
	d.current = current
	d.cursor = min(max(d.cursor, 0), max(len(d.entries)-1, 0))
}

// SetWidth sets the terminal width the dropdown aligns against.
func (d *Dropdown) SetWidth(w int) {
	d.width = w
}

// Open shows the list with the cursor on the current page.
func (d *Dropdown) Open() {
	d.open = true
	d.cursor = d.current
}

// Close hides the list.
func (d *Dropdown) Close() {
	d.open = false
}

// Toggle switches visibility.
func (d *Dropdown) Toggle() {
	if d.open {
		d.Close()
	} else {
		d.Open()
	}
}

// IsOpen reports whether the list is shown.
func (d *Dropdown) IsOpen() bool {
	return d.open
}

// CursorUp moves the cursor up one entry.
func (d *Dropdown) CursorUp() {
	if d.cursor > 0 {
		d.cursor--
	}
}

// CursorDown moves the cursor down one entry.
func (d *Dropdown) CursorDown() {
	if d.cursor < len(d.entries)-1 {
		d.cursor++
	}
}

// Selected returns the entry under the cursor.
func (d *Dropdown) Selected() (string, bool) {
	if d.cursor < 0 || d.cursor >= len(d.entries) {
		return "", false
	}
	return d.entries[d.cursor], true
}

// Height returns the rows the dropdown occupies, zero when closed.
func (d *Dropdown) Height() int {
	if !d.open {
		return 0
	}
	return len(d.entries) + 2
}

// Region returns the screen region covered by the open dropdown.
func (d *Dropdown) Region() Rect {
	if !d.open {
		return Rect{}
	}
	w := d.boxWidth()
	return Rect{X: d.width - w, Y: d.top, W: w, H: d.Height()}
}

// EntryAt returns the entry rendered at (x, y).
func (d *Dropdown) EntryAt(x, y int) (string, bool) {
	if !d.Region().Contains(x, y) {
		return "", false
	}
	row := y - d.top - 1
	if row < 0 || row >= len(d.entries) {
		return "", false
	}
	return d.entries[row], true
}

func (d *Dropdown) boxWidth() int {
	w := dropdownMinWidth
	for _, e := range d.entries {
		w = max(w, lipgloss.Width(e)+6)
	}
	return min(w, dropdownMaxWidth, d.width)
}

// View renders the dropdown, or "" when closed.
func (d *Dropdown) View() string {
	if !d.open {
		return ""
	}

	t := theme.Current
	w := d.boxWidth()
	inner := max(w-2, 1)

	normal := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(inner)
	selected := normal.
		Background(t.Selected).
		Bold(true)

	rows := make([]string, 0, len(d.entries))
	for i, e := range d.entries {
		marker := "  "
		if i == d.current {
			marker = "• "
		}
		line := ansi.Truncate(" "+marker+e, inner, "…")
		if i == d.cursor {
			rows = append(rows, selected.Render(line))
		} else {
			rows = append(rows, normal.Render(line))
		}
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Render(strings.Join(rows, "\n"))

	return lipgloss.PlaceHorizontal(d.width, lipgloss.Right, box)
}
