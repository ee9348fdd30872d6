package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestFrameViewStates(t *testing.T) {
	fv := NewFrameView()
	fv.SetSize(60, 10)

	cmd := fv.ShowLoading()
	assert.NotNil(t, cmd)
	assert.True(t, fv.Loading())
	assert.Contains(t, fv.View(), "Loading...")

	fv.ShowError("This website took too long to respond")
	assert.False(t, fv.Loading())
	assert.Contains(t, fv.View(), "took too long")

	fv.ShowContent("hello frame")
	assert.Empty(t, fv.Error())
	assert.Contains(t, fv.View(), "hello frame")
	assert.Equal(t, "ALL", fv.ScrollInfo())
}

func TestFrameViewScrollInfo(t *testing.T) {
	fv := NewFrameView()
	fv.SetSize(60, 10)
	fv.ShowContent(strings.Repeat("line\n", 29) + "line")

	assert.Equal(t, "TOP", fv.ScrollInfo())
	fv.GotoBottom()
	assert.Equal(t, "BOT", fv.ScrollInfo())
	fv.GotoTop()
	fv.LineDown(10)
	assert.Equal(t, "50%", fv.ScrollInfo())
}

func TestFrameViewIgnoresSpinnerWhenIdle(t *testing.T) {
	fv := NewFrameView()
	fv.SetSize(60, 10)
	fv.ShowContent("page")

	_, cmd := fv.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestStatusBarFooter(t *testing.T) {
	s := NewStatusBar()
	s.SetWidth(200)
	s.SetCookieCount(3)
	s.SetTitle("Lorem Ipsum")

	out := s.View()
	lines := splitLines(out)
	assert.Len(t, lines, StatusHeight)
	assert.Contains(t, lines[0], "Lorem Ipsum")
	assert.Contains(t, lines[0], "🍪 3")
	assert.Contains(t, lines[1], FooterNote)

	s.SetMessage("Please enter a valid URL", true)
	assert.Contains(t, s.View(), "Please enter a valid URL")
	assert.NotContains(t, s.View(), "Lorem Ipsum")
}
