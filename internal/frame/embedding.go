package frame

import (
	"net/http"
	"strings"
)

// EmbeddingDenied reports whether the response headers forbid showing the
// page inside a frame, and why. The embedder is never same-origin with the
// framed site, so SAMEORIGIN and 'self' deny as well. A CSP frame-ancestors
// directive takes precedence over X-Frame-Options.
func EmbeddingDenied(h http.Header) (string, bool) {
	sawAncestors := false
	for _, policy := range h.Values("Content-Security-Policy") {
		sources, ok := frameAncestors(policy)
		if !ok {
			continue
		}
		sawAncestors = true
		if !containsWildcard(sources) {
			return "Content-Security-Policy frame-ancestors " + strings.Join(sources, " "), true
		}
	}
	if sawAncestors {
		return "", false
	}

	for _, v := range h.Values("X-Frame-Options") {
		for _, opt := range strings.Split(v, ",") {
			switch strings.ToLower(strings.TrimSpace(opt)) {
			case "deny", "sameorigin":
				return "X-Frame-Options " + strings.ToUpper(strings.TrimSpace(opt)), true
			}
		}
	}
	return "", false
}

func frameAncestors(policy string) ([]string, bool) {
	for _, directive := range strings.Split(policy, ";") {
		fields := strings.Fields(directive)
		if len(fields) == 0 || !strings.EqualFold(fields[0], "frame-ancestors") {
			continue
		}
		return fields[1:], true
	}
	return nil, false
}

func containsWildcard(sources []string) bool {
	for _, s := range sources {
		if s == "*" {
			return true
		}
	}
	return false
}
