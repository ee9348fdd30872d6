package browser

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Article holds the readable content of a framed page.
type Article struct {
	Title       string
	Byline      string
	Content     string // HTML fragment
	TextContent string // plain text
	SiteName    string
	URL         string
	FinalURL    string
	FetchTime   time.Duration
}

// Link is a numbered hyperlink found while rendering a page.
type Link struct {
	Index int
	Text  string
	URL   string
}

// Extract pulls the readable article out of a fetched page. body replaces
// result.Body so callers can pre-process the markup.
func Extract(result *FetchResult, body []byte) (*Article, error) {
	if !IsHTML(result.ContentType) {
		return &Article{
			Title:       result.FinalURL,
			Content:     "<pre>" + html.EscapeString(string(body)) + "</pre>",
			TextContent: string(body),
			URL:         result.URL,
			FinalURL:    result.FinalURL,
			FetchTime:   result.Duration,
		}, nil
	}

	parsedURL, err := url.Parse(result.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	return &Article{
		Title:       article.Title,
		Byline:      article.Byline,
		Content:     article.Content,
		TextContent: article.TextContent,
		SiteName:    article.SiteName,
		URL:         result.URL,
		FinalURL:    result.FinalURL,
		FetchTime:   result.Duration,
	}, nil
}
