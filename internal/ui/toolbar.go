package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tframe/internal/theme"
)

// Button identifies a clickable control in the toolbar.
type Button int

const (
	ButtonNone Button = iota
	ButtonBack
	ButtonForward
	ButtonRefresh
	ButtonClearCookies
	ButtonAddress
	ButtonDropdown
)

// ToolbarHeight is the number of rows the toolbar occupies.
const ToolbarHeight = 2

var buttonLabels = map[Button]string{
	ButtonBack:         " ◀ ",
	ButtonForward:      " ▶ ",
	ButtonRefresh:      " ⟳ ",
	ButtonClearCookies: " 🍪 ",
	ButtonDropdown:     " ▾ ",
}

var leftButtons = []Button{ButtonBack, ButtonForward, ButtonRefresh, ButtonClearCookies}

// Toolbar lays out the navigation buttons around the address field and
// maps pointer positions back to buttons.
type Toolbar struct {
	width        int
	canBack      bool
	canForward   bool
	dropdownOpen bool
	regions      map[Button]Rect
}

// NewToolbar creates a toolbar.
func NewToolbar() Toolbar {
	return Toolbar{regions: make(map[Button]Rect)}
}

// SetWidth lays the toolbar out for the given terminal width and returns the
// width left for the address field.
func (tb *Toolbar) SetWidth(w int) int {
	tb.width = w
	tb.regions = make(map[Button]Rect)

	x := 0
	for _, b := range leftButtons {
		bw := lipgloss.Width(buttonLabels[b])
		tb.regions[b] = Rect{X: x, Y: 0, W: bw, H: 1}
		x += bw
	}
	x++

	dw := lipgloss.Width(buttonLabels[ButtonDropdown])
	addr := max(w-x-dw-1, 1)
	tb.regions[ButtonAddress] = Rect{X: x, Y: 0, W: addr, H: 1}
	tb.regions[ButtonDropdown] = Rect{X: x + addr + 1, Y: 0, W: dw, H: 1}
	return addr
}

// SetNavigation enables or disables the back and forward buttons.
func (tb *Toolbar) SetNavigation(canBack, canForward bool) {
	tb.canBack = canBack
	tb.canForward = canForward
}

// SetDropdownOpen flips the toggle glyph.
func (tb *Toolbar) SetDropdownOpen(open bool) {
	tb.dropdownOpen = open
}

// Enabled reports whether pressing b would do anything.
func (tb *Toolbar) Enabled(b Button) bool {
	switch b {
	case ButtonBack:
		return tb.canBack
	case ButtonForward:
		return tb.canForward
	default:
		return true
	}
}

// Region returns the screen region of b.
func (tb *Toolbar) Region(b Button) Rect {
	return tb.regions[b]
}

// HitTest returns the button under (x, y). Disabled buttons still report
// their identity; callers decide whether the press does anything.
func (tb *Toolbar) HitTest(x, y int) Button {
	for b, r := range tb.regions {
		if r.Contains(x, y) {
			return b
		}
	}
	return ButtonNone
}

// View renders the toolbar with address as the already rendered address field.
func (tb *Toolbar) View(address string) string {
	t := theme.Current

	enabled := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Bold(true)
	disabled := lipgloss.NewStyle().
		Foreground(t.Disabled).
		Background(t.Surface)
	gap := lipgloss.NewStyle().
		Background(t.Surface).
		Render(" ")

	var sb strings.Builder
	for _, b := range leftButtons {
		style := enabled
		if !tb.Enabled(b) {
			style = disabled
		}
		sb.WriteString(style.Render(buttonLabels[b]))
	}
	sb.WriteString(gap)
	sb.WriteString(address)
	sb.WriteString(gap)

	toggle := buttonLabels[ButtonDropdown]
	if tb.dropdownOpen {
		toggle = " ▴ "
		sb.WriteString(enabled.Foreground(t.Primary).Render(toggle))
	} else {
		sb.WriteString(enabled.Render(toggle))
	}

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", max(tb.width, 0)))

	return sb.String() + "\n" + border
}
