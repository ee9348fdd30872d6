package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for tframe.
type KeyMap struct {
	// Scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Browser
	FocusAddress key.Binding
	Back         key.Binding
	Forward      key.Binding
	Refresh      key.Binding
	ClearCookies key.Binding
	FollowLink   key.Binding // after typing a link number

	// History dropdown
	HistoryToggle key.Binding
	Select        key.Binding
	Cancel        key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		FocusAddress: key.NewBinding(
			key.WithKeys("o", "ctrl+l"),
			key.WithHelp("o", "edit address"),
		),
		Back: key.NewBinding(
			key.WithKeys("H", "alt+left"),
			key.WithHelp("H", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("L", "alt+right"),
			key.WithHelp("L", "go forward"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		ClearCookies: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear cookies"),
		),
		FollowLink: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("<n> enter", "follow link n in the frame"),
		),
		HistoryToggle: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open entry"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
