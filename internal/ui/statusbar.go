package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/tframe/internal/theme"
)

// FooterNote is shown under the status line at all times.
const FooterNote = "Note: Some websites cannot be displayed due to security restrictions (X-Frame-Options)."

// StatusHeight is the number of rows the status bar and footer occupy.
const StatusHeight = 2

// StatusBar shows mode, page title, notices and cookie count at the bottom
// of the screen.
type StatusBar struct {
	mode       string
	title      string
	loading    bool
	scrollInfo string
	cookies    int
	message    string
	isError    bool
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetTitle updates the page title.
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetMode sets the current mode indicator (NORMAL, INSERT, HISTORY).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetCookieCount sets the number of stored cookie entries.
func (s *StatusBar) SetCookieCount(n int) {
	s.cookies = n
}

// SetMessage sets a notice; an empty msg clears it.
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.message = msg
	s.isError = isError
}

// Message returns the current notice.
func (s *StatusBar) Message() string {
	return s.message
}

// View renders the status line and the footer note.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Surface).
		Padding(0, 1)
	switch s.mode {
	case "INSERT":
		modeStyle = modeStyle.Background(t.Secure)
	case "HISTORY":
		modeStyle = modeStyle.Background(t.Accent)
	default:
		modeStyle = modeStyle.Background(t.Primary)
	}
	mode := modeStyle.Render(s.mode)

	cell := lipgloss.NewStyle().
		Background(t.Surface).
		Padding(0, 1)

	// Left side: notice, loading or title.
	var left string
	switch {
	case s.message != "":
		fg := t.Info
		if s.isError {
			fg = t.Error
		}
		left = cell.Foreground(fg).Render(s.message)
	case s.loading:
		left = cell.Foreground(t.Warning).Bold(true).Render("Loading...")
	case s.title != "":
		left = cell.Foreground(t.Text).Render(s.title)
	}

	right := cell.Foreground(t.TextDim).Render(fmt.Sprintf("🍪 %d", s.cookies))
	if s.scrollInfo != "" {
		right += cell.Bold(true).Foreground(t.Primary).Render(s.scrollInfo)
	}

	spacerWidth := s.width - lipgloss.Width(mode) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		left = ansi.Truncate(left, max(lipgloss.Width(left)+spacerWidth, 0), "…")
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(fmt.Sprintf("%*s", spacerWidth, ""))

	note := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true).
		Render(ansi.Truncate(FooterNote, max(s.width, 0), "…"))

	return mode + left + spacer + right + "\n" + note
}
