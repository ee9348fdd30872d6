package browser

// MaxHistory is the number of most recent URLs a History keeps.
const MaxHistory = 10

// History is a bounded, deduplicated, most-recent-first list of visited URLs
// with a cursor for back/forward. Entry 0 is the newest; Back moves the
// cursor towards older entries.
type History struct {
	entries []string
	cursor  int
	limit   int
}

// NewHistory creates a history holding a single initial entry.
// An empty initial URL yields an empty history.
func NewHistory(initial string) *History {
	h := &History{limit: MaxHistory}
	if initial != "" {
		h.entries = []string{initial}
	}
	return h
}

// Push moves url to the front, dropping any earlier occurrence and anything
// past the limit, and resets the cursor to the front.
func (h *History) Push(url string) {
	entries := make([]string, 0, len(h.entries)+1)
	entries = append(entries, url)
	for _, e := range h.entries {
		if e != url {
			entries = append(entries, e)
		}
	}
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}
	h.entries = entries
	h.cursor = 0
}

// Back moves the cursor one entry towards older pages.
// Returns the URL and true if possible.
func (h *History) Back() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry towards newer pages.
// Returns the URL and true if possible.
func (h *History) Forward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Current returns the entry under the cursor, or empty string if history is empty.
func (h *History) Current() string {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return ""
	}
	return h.entries[h.cursor]
}

// Cursor returns the cursor index.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// CanGoBack reports whether there is an older entry.
func (h *History) CanGoBack() bool {
	return h.cursor < len(h.entries)-1
}

// CanGoForward reports whether there is a newer entry.
func (h *History) CanGoForward() bool {
	return h.cursor > 0
}

// Len returns the total number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
