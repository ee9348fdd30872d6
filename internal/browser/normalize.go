package browser

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidURL is returned when address-bar input cannot be turned into a URL.
var ErrInvalidURL = errors.New("invalid URL format")

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	suffixPattern = regexp.MustCompile(`(?i)\.[a-z]{2,}$`)
)

// hostProfile maps hosts the way browsers do for lookups but, unlike
// idna.Lookup, keeps underscores and hyphen placements that resolvers accept.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

// forbiddenHostCodePoints may not appear in a domain even after mapping.
const forbiddenHostCodePoints = "\x00\t\n\r #%/:<>?@[\\]^|\x7f"

// NormalizeURL turns free-form address-bar input into a canonical https URL.
//
// Input without a scheme gets https:// prepended, input that does not end in
// a dot-suffix of two or more letters gets .com appended, and http is
// upgraded to https. A single trailing slash is ignored by the suffix test.
// The result is the canonical string form, so "lipsum.com" becomes
// "https://lipsum.com/", and normalizing a result again returns it unchanged.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address: %w", ErrInvalidURL)
	}

	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}
	if !suffixPattern.MatchString(strings.TrimSuffix(raw, "/")) {
		raw += ".com"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", raw, ErrInvalidURL)
	}
	if u.Scheme == "http" {
		u.Scheme = "https"
	}

	host, err := canonicalHost(u)
	if err != nil {
		return "", fmt.Errorf("host of %q: %w", raw, err)
	}
	u.Host = host
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}

// canonicalHost validates and lower-cases the host, converting IDNs to
// punycode and dropping the default https port.
func canonicalHost(u *url.URL) (string, error) {
	hostname := u.Hostname()
	port := u.Port()
	if hostname == "" {
		return "", ErrInvalidURL
	}

	if ip := net.ParseIP(hostname); ip != nil {
		hostname = ip.String()
		if ip.To4() == nil {
			hostname = "[" + hostname + "]"
		}
	} else {
		if strings.HasPrefix(hostname, ".") || strings.Contains(hostname, "..") {
			return "", ErrInvalidURL
		}
		ascii, err := hostProfile.ToASCII(hostname)
		if err != nil || strings.ContainsAny(ascii, forbiddenHostCodePoints) {
			return "", ErrInvalidURL
		}
		hostname = ascii
	}

	if port == "" || port == "443" {
		return hostname, nil
	}
	return hostname + ":" + port, nil
}
