package frame

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/vidyasagar/tframe/internal/browser"
)

// ErrFrameEmbeddingDenied is returned when a page refuses to be framed.
var ErrFrameEmbeddingDenied = errors.New("frame embedding denied")

// ErrNoSuchLink is returned for a link number the page does not have.
var ErrNoSuchLink = errors.New("no such link")

// DeniedMessage is shown in place of a frame that failed to load.
const DeniedMessage = "This website cannot be displayed in the browser (X-Frame-Options restriction)"

// Content is what a surface displays for one load.
type Content struct {
	URL   string // final URL after redirects
	Title string
	Body  string // terminal-ready text
	Links []browser.Link
}

// ResolveLink returns the absolute URL of the link numbered n, resolved
// against the page URL. Only http and https targets can be framed.
func (c *Content) ResolveLink(n int) (string, error) {
	var href string
	for _, l := range c.Links {
		if l.Index == n {
			href = l.URL
			break
		}
	}
	if href == "" {
		return "", fmt.Errorf("link %d: %w", n, ErrNoSuchLink)
	}

	base, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("page url %q: %w", c.URL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("link %d: %w", n, err)
	}
	target := base.ResolveReference(ref)
	if target.Scheme != "http" && target.Scheme != "https" {
		return "", fmt.Errorf("link %d: unsupported scheme %q", n, target.Scheme)
	}
	return target.String(), nil
}

// Surface is the embedded rendering mechanism a frame delegates to.
type Surface interface {
	Load(ctx context.Context, target string, sandbox Sandbox, width int) (*Content, error)
}

// HTTPSurface fetches pages over HTTP and renders them as terminal text,
// refusing pages whose headers forbid framing.
type HTTPSurface struct {
	fetcher  *browser.Fetcher
	renderer *browser.Renderer
	logger   logrus.FieldLogger
}

// NewHTTPSurface creates an HTTPSurface.
func NewHTTPSurface(f *browser.Fetcher, r *browser.Renderer, logger logrus.FieldLogger) *HTTPSurface {
	return &HTTPSurface{
		fetcher:  f,
		renderer: r,
		logger:   logger.WithField("component", "surface"),
	}
}

// Load implements Surface.
func (s *HTTPSurface) Load(ctx context.Context, target string, sandbox Sandbox, width int) (*Content, error) {
	result, err := s.fetcher.Fetch(ctx, target, browser.FetchOptions{
		WithCookies: sandbox.Allows(AllowSameOrigin),
	})
	if err != nil {
		return nil, err
	}

	if reason, denied := EmbeddingDenied(result.Header); denied {
		return nil, fmt.Errorf("%s refused framing (%s): %w", result.FinalURL, reason, ErrFrameEmbeddingDenied)
	}

	body := result.Body
	if browser.IsHTML(result.ContentType) {
		body, err = sandbox.Prepare(body)
		if err != nil {
			return nil, err
		}
	}

	article, err := browser.Extract(result, body)
	if err != nil {
		return nil, err
	}
	article.Content = sandbox.Sanitize(article.Content)

	page := s.renderer.Render(article, width)
	s.logger.WithFields(logrus.Fields{
		"url":      result.FinalURL,
		"status":   result.StatusCode,
		"links":    len(page.Links),
		"duration": result.Duration,
	}).Debug("frame content rendered")

	title := page.Title
	if title == "" {
		title = result.FinalURL
	}
	return &Content{
		URL:   result.FinalURL,
		Title: title,
		Body:  page.Content,
		Links: page.Links,
	}, nil
}
