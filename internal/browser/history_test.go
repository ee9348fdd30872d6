package browser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPushDeduplicates(t *testing.T) {
	h := NewHistory("")
	h.Push("A")
	h.Push("B")
	h.Push("A")

	assert.Equal(t, []string{"A", "B"}, h.Entries())
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, "A", h.Current())
}

func TestHistoryPushCapsAtMax(t *testing.T) {
	h := NewHistory("home")
	for i := 0; i < 25; i++ {
		h.Push(fmt.Sprintf("u%d", i))
		require.LessOrEqual(t, h.Len(), MaxHistory)
	}

	entries := h.Entries()
	require.Len(t, entries, MaxHistory)
	assert.Equal(t, "u24", entries[0])
	assert.Equal(t, "u15", entries[MaxHistory-1])
	assert.NotContains(t, entries, "home")
}

func TestHistoryBackForward(t *testing.T) {
	h := NewHistory("C")
	h.Push("B")
	h.Push("A") // [A B C]

	assert.False(t, h.CanGoForward())
	_, ok := h.Forward()
	assert.False(t, ok, "forward at the front is a no-op")

	url, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "B", url)

	url, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, "C", url)
	assert.Equal(t, 2, h.Cursor())

	_, ok = h.Back()
	assert.False(t, ok, "back at the last entry is a no-op")
	assert.Equal(t, 2, h.Cursor())

	url, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, "B", url)
	assert.Equal(t, 1, h.Cursor())
}

func TestHistoryBackThenForwardRestores(t *testing.T) {
	h := NewHistory("u0")
	for i := 1; i < 6; i++ {
		h.Push(fmt.Sprintf("u%d", i))
	}

	for h.CanGoBack() {
		cursor, current := h.Cursor(), h.Current()
		_, ok := h.Back()
		require.True(t, ok)
		_, ok = h.Forward()
		require.True(t, ok)
		assert.Equal(t, cursor, h.Cursor())
		assert.Equal(t, current, h.Current())
		h.Back()
	}
}

func TestHistoryPushResetsCursor(t *testing.T) {
	h := NewHistory("C")
	h.Push("B")
	h.Push("A")
	h.Back()
	h.Back()

	h.Push("D")
	assert.Equal(t, []string{"D", "A", "B", "C"}, h.Entries())
	assert.Equal(t, 0, h.Cursor())
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory("")
	assert.Equal(t, "", h.Current())
	assert.False(t, h.CanGoBack())
	assert.False(t, h.CanGoForward())
	assert.Equal(t, 0, h.Len())
}
