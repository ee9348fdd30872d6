package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSandbox(t *testing.T) {
	s, err := ParseSandbox("allow-same-origin  Allow-Scripts")
	require.NoError(t, err)
	assert.True(t, s.Allows(AllowScripts))
	assert.True(t, s.Allows(AllowSameOrigin))
	assert.Equal(t, "allow-scripts allow-same-origin", s.String())
	assert.Equal(t, DefaultSandbox().String(), s.String())

	empty, err := ParseSandbox("")
	require.NoError(t, err)
	assert.False(t, empty.Allows(AllowScripts))
	assert.Equal(t, "", empty.String())

	_, err = ParseSandbox("allow-scripts allow-popups")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allow-popups")
}

const noscriptPage = `<html><body><p>main</p><noscript><p>enable js</p></noscript><script>steal()</script></body></html>`

func TestSandboxPrepareWithScripts(t *testing.T) {
	out, err := DefaultSandbox().Prepare([]byte(noscriptPage))
	require.NoError(t, err)

	assert.Contains(t, string(out), "<p>main</p>")
	assert.NotContains(t, string(out), "enable js")
	assert.NotContains(t, string(out), "steal()")
}

func TestSandboxPrepareWithoutScripts(t *testing.T) {
	out, err := NewSandbox(AllowSameOrigin).Prepare([]byte(noscriptPage))
	require.NoError(t, err)

	assert.Contains(t, string(out), "<p>enable js</p>")
	assert.NotContains(t, string(out), "<noscript>")
	assert.NotContains(t, string(out), "steal()")
}

func TestSandboxSanitize(t *testing.T) {
	out := DefaultSandbox().Sanitize(`<p onclick="x()">hi <a href="https://a.com">a</a></p><iframe src="https://evil"></iframe>`)

	assert.Contains(t, out, "hi")
	assert.Contains(t, out, `href="https://a.com"`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "iframe")
}
