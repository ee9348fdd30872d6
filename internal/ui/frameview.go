package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tframe/internal/theme"
)

// FrameView displays the framed page, a loading spinner, or a failure box.
type FrameView struct {
	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	loading  bool
	errMsg   string
}

// NewFrameView creates a frame view (dimensions set on first WindowSizeMsg).
func NewFrameView() FrameView {
	return FrameView{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// SetSize updates the frame dimensions.
func (fv *FrameView) SetSize(width, height int) {
	if !fv.ready {
		fv.viewport = viewport.New(width, height)
		fv.viewport.MouseWheelEnabled = true
		fv.viewport.MouseWheelDelta = 3
		fv.ready = true
	} else {
		fv.viewport.Width = width
		fv.viewport.Height = height
	}
}

// ShowLoading hides the page behind the spinner and starts it.
func (fv *FrameView) ShowLoading() tea.Cmd {
	fv.loading = true
	fv.errMsg = ""
	return fv.spinner.Tick
}

// ShowContent displays rendered page content from the top.
func (fv *FrameView) ShowContent(content string) {
	fv.loading = false
	fv.errMsg = ""
	if !fv.ready {
		return
	}
	fv.viewport.SetContent(content)
	fv.viewport.GotoTop()
}

// ShowError replaces the page with msg.
func (fv *FrameView) ShowError(msg string) {
	fv.loading = false
	fv.errMsg = msg
}

// Loading reports whether the spinner is shown.
func (fv *FrameView) Loading() bool {
	return fv.loading
}

// Error returns the failure message on display, if any.
func (fv *FrameView) Error() string {
	return fv.errMsg
}

// Update forwards spinner ticks while loading and everything else to the
// viewport.
func (fv *FrameView) Update(msg tea.Msg) (*FrameView, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		if !fv.loading {
			return fv, nil
		}
		var cmd tea.Cmd
		fv.spinner, cmd = fv.spinner.Update(msg)
		return fv, cmd
	}
	if !fv.ready || fv.loading || fv.errMsg != "" {
		return fv, nil
	}
	var cmd tea.Cmd
	fv.viewport, cmd = fv.viewport.Update(msg)
	return fv, cmd
}

// ScrollInfo returns a string like "42%", "TOP", "BOT", or "ALL" when the
// whole page fits.
func (fv *FrameView) ScrollInfo() string {
	if !fv.ready {
		return ""
	}
	if fv.viewport.AtTop() && fv.viewport.AtBottom() {
		return "ALL"
	}
	pct := fv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// HalfPageDown scrolls down half a page.
func (fv *FrameView) HalfPageDown() {
	if fv.ready {
		fv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (fv *FrameView) HalfPageUp() {
	if fv.ready {
		fv.viewport.HalfViewUp()
	}
}

// LineDown scrolls down n lines.
func (fv *FrameView) LineDown(n int) {
	if fv.ready {
		fv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (fv *FrameView) LineUp(n int) {
	if fv.ready {
		fv.viewport.LineUp(n)
	}
}

// GotoTop scrolls to the top.
func (fv *FrameView) GotoTop() {
	if fv.ready {
		fv.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (fv *FrameView) GotoBottom() {
	if fv.ready {
		fv.viewport.GotoBottom()
	}
}

// View renders the frame.
func (fv *FrameView) View() string {
	if !fv.ready {
		return ""
	}

	t := theme.Current
	w, h := fv.viewport.Width, fv.viewport.Height

	switch {
	case fv.loading:
		label := lipgloss.NewStyle().
			Foreground(t.Primary).
			Render(fv.spinner.View() + " Loading...")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, label)
	case fv.errMsg != "":
		box := lipgloss.NewStyle().
			Foreground(t.Error).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Error).
			Padding(1, 2).
			Width(min(w-4, 60)).
			Align(lipgloss.Center).
			Render(fv.errMsg)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
	default:
		return fv.viewport.View()
	}
}
