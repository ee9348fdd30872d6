package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tframe/internal/theme"
)

// Placeholder is shown in the empty address field.
const Placeholder = "Enter URL (https:// and .com will be added automatically)"

const shield = "🛡 "

// URLBar is the address field. Its text is edited independently of the
// current URL and only replaced when a navigation succeeds.
type URLBar struct {
	input  textinput.Model
	active bool
	width  int
}

// NewURLBar creates a new URL bar.
func NewURLBar() URLBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = Placeholder
	ti.CharLimit = 2048
	ti.Width = 60

	return URLBar{
		input: ti,
	}
}

// SetWidth sets the total cell width of the bar including the shield.
func (u *URLBar) SetWidth(w int) {
	u.width = w
	u.input.Width = max(w-lipgloss.Width(shield)-2, 1)
}

// Focus activates the URL bar for input.
func (u *URLBar) Focus() tea.Cmd {
	u.active = true
	u.input.CursorEnd()
	return u.input.Focus()
}

// Blur deactivates the URL bar.
func (u *URLBar) Blur() {
	u.active = false
	u.input.Blur()
}

// IsActive reports whether the URL bar is focused.
func (u *URLBar) IsActive() bool {
	return u.active
}

// Value returns the current input text.
func (u *URLBar) Value() string {
	return u.input.Value()
}

// SetValue sets the URL bar text.
func (u *URLBar) SetValue(s string) {
	u.input.SetValue(s)
}

// Update handles messages for the URL bar.
func (u *URLBar) Update(msg tea.Msg) (*URLBar, tea.Cmd) {
	if !u.active {
		return u, nil
	}
	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd
}

// View renders the shield and the input.
func (u *URLBar) View() string {
	t := theme.Current

	fg := t.TextDim
	if u.active {
		fg = t.Text
	}

	shieldStyle := lipgloss.NewStyle().
		Foreground(t.Secure).
		Background(t.Surface)
	barStyle := lipgloss.NewStyle().
		Foreground(fg).
		Background(t.Surface).
		Width(max(u.width-lipgloss.Width(shield), 0))

	return shieldStyle.Render(shield) + barStyle.Render(u.input.View())
}
