package frame

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Capability is a single sandbox permission.
type Capability uint8

const (
	AllowScripts Capability = 1 << iota
	AllowSameOrigin
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{AllowScripts, "allow-scripts"},
	{AllowSameOrigin, "allow-same-origin"},
}

// Sandbox is the capability set a frame is restricted to.
type Sandbox struct {
	caps   Capability
	policy *bluemonday.Policy
}

// DefaultSandbox allows scripts and same-origin, nothing else.
func DefaultSandbox() Sandbox {
	return NewSandbox(AllowScripts | AllowSameOrigin)
}

// NewSandbox creates a sandbox with the given capabilities.
func NewSandbox(caps Capability) Sandbox {
	return Sandbox{caps: caps, policy: bluemonday.UGCPolicy()}
}

// ParseSandbox parses a space-separated capability list such as
// "allow-scripts allow-same-origin".
func ParseSandbox(s string) (Sandbox, error) {
	var caps Capability
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		found := false
		for _, cn := range capabilityNames {
			if cn.name == tok {
				caps |= cn.c
				found = true
				break
			}
		}
		if !found {
			return Sandbox{}, fmt.Errorf("unknown sandbox capability %q", tok)
		}
	}
	return NewSandbox(caps), nil
}

// Allows reports whether c is granted.
func (s Sandbox) Allows(c Capability) bool {
	return s.caps&c == c
}

// String returns the space-separated capability list.
func (s Sandbox) String() string {
	var names []string
	for _, cn := range capabilityNames {
		if s.Allows(cn.c) {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, " ")
}

// Prepare applies script-dependent markup rules to a raw document. Scripts
// never run in a frame; with allow-scripts the page is treated as if they
// had, so <noscript> fallbacks are dropped, otherwise they are unwrapped.
func (s Sandbox) Prepare(raw []byte) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if s.Allows(AllowScripts) {
		doc.Find("noscript").Remove()
	} else {
		doc.Find("noscript").Each(func(_ int, ns *goquery.Selection) {
			// The HTML parser keeps noscript content as raw text.
			ns.ReplaceWithHtml(ns.Text())
		})
	}
	doc.Find("script").Remove()

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return []byte(out), nil
}

// Sanitize strips everything but user-generated-content markup from an
// extracted article fragment.
func (s Sandbox) Sanitize(fragment string) string {
	if s.policy == nil {
		return bluemonday.UGCPolicy().Sanitize(fragment)
	}
	return s.policy.Sanitize(fragment)
}
