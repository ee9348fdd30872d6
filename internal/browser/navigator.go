package browser

import "fmt"

// DefaultHomepage is loaded when no other start page is configured.
const DefaultHomepage = "https://lipsum.com/"

// NavigationState is a snapshot of the navigator.
type NavigationState struct {
	CurrentURL string
	History    []string
	Cursor     int
}

// Navigator owns the current URL and the history stack. It is not safe for
// concurrent use; the UI loop is its only caller.
type Navigator struct {
	history *History
	current string
}

// NewNavigator creates a navigator whose history holds only home.
func NewNavigator(home string) (*Navigator, error) {
	formatted, err := NormalizeURL(home)
	if err != nil {
		return nil, fmt.Errorf("homepage: %w", err)
	}
	return &Navigator{
		history: NewHistory(formatted),
		current: formatted,
	}, nil
}

// Navigate normalizes raw and makes it the current page. On error the
// navigator is left unchanged.
func (n *Navigator) Navigate(raw string) (string, error) {
	formatted, err := NormalizeURL(raw)
	if err != nil {
		return "", err
	}
	n.Visit(formatted)
	return formatted, nil
}

// Visit makes an already normalized URL, such as a history entry, the
// current page without normalizing it again.
func (n *Navigator) Visit(url string) {
	n.history.Push(url)
	n.current = url
}

// Back moves to the next older history entry.
func (n *Navigator) Back() (string, bool) {
	url, ok := n.history.Back()
	if ok {
		n.current = url
	}
	return url, ok
}

// Forward moves to the next newer history entry.
func (n *Navigator) Forward() (string, bool) {
	url, ok := n.history.Forward()
	if ok {
		n.current = url
	}
	return url, ok
}

// Current returns the current URL.
func (n *Navigator) Current() string {
	return n.current
}

// CanGoBack reports whether Back would move.
func (n *Navigator) CanGoBack() bool {
	return n.history.CanGoBack()
}

// CanGoForward reports whether Forward would move.
func (n *Navigator) CanGoForward() bool {
	return n.history.CanGoForward()
}

// Entries returns the history, newest first.
func (n *Navigator) Entries() []string {
	return n.history.Entries()
}

// State returns a snapshot of the navigator.
func (n *Navigator) State() NavigationState {
	return NavigationState{
		CurrentURL: n.current,
		History:    n.history.Entries(),
		Cursor:     n.history.Cursor(),
	}
}
