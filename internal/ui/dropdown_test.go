package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func newTestDropdown() Dropdown {
	d := NewDropdown(ToolbarHeight)
	d.SetWidth(100)
	d.SetEntries([]string{"https://b.com/", "https://a.com/", "https://lipsum.com/"}, 1)
	return d
}

func TestDropdownToggle(t *testing.T) {
	d := newTestDropdown()
	assert.False(t, d.IsOpen())
	assert.Equal(t, Rect{}, d.Region())
	assert.Equal(t, "", d.View())

	d.Toggle()
	assert.True(t, d.IsOpen())
	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "https://a.com/", sel, "opens on the current page")

	d.Toggle()
	assert.False(t, d.IsOpen())
}

func TestDropdownCursor(t *testing.T) {
	d := newTestDropdown()
	d.Open()

	d.CursorUp()
	d.CursorUp()
	sel, _ := d.Selected()
	assert.Equal(t, "https://b.com/", sel)

	d.CursorDown()
	d.CursorDown()
	d.CursorDown()
	sel, _ = d.Selected()
	assert.Equal(t, "https://lipsum.com/", sel)
}

func TestDropdownRegion(t *testing.T) {
	d := newTestDropdown()
	d.Open()

	r := d.Region()
	assert.Equal(t, ToolbarHeight, r.Y)
	assert.Equal(t, 5, r.H)
	assert.Equal(t, 100, r.X+r.W, "right aligned")
	assert.Equal(t, r.H, len(splitLines(d.View())))

	e, ok := d.EntryAt(r.X+2, r.Y+1)
	require.True(t, ok)
	assert.Equal(t, "https://b.com/", e)

	e, ok = d.EntryAt(r.X+r.W-1, r.Y+3)
	require.True(t, ok)
	assert.Equal(t, "https://lipsum.com/", e)

	_, ok = d.EntryAt(r.X+2, r.Y)
	assert.False(t, ok, "top border")
	_, ok = d.EntryAt(r.X-1, r.Y+1)
	assert.False(t, ok, "left of the box")
}

func TestDropdownSetEntriesClampsCursor(t *testing.T) {
	d := newTestDropdown()
	d.Open()
	d.CursorDown()
	d.CursorDown()

	d.SetEntries([]string{"https://only.com/"}, 0)
	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "https://only.com/", sel)
}
