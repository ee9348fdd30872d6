package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultRenderWidth = 80
	maxContentWidth    = 100
	rendererCacheSize  = 8
)

// RenderedPage holds the terminal-ready output for one frame generation.
type RenderedPage struct {
	Title   string
	Content string // styled terminal text
	Links   []Link
}

// Renderer converts article HTML into styled terminal text. Glamour renderers
// are expensive to build, so one is cached per wrap width.
type Renderer struct {
	style string
	mu    sync.Mutex
	cache *lru.Cache[int, *glamour.TermRenderer]
}

// NewRenderer creates a renderer using the named glamour style ("auto",
// "dark", "light", "notty", ...). An empty style means "auto".
func NewRenderer(style string) *Renderer {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[int, *glamour.TermRenderer](rendererCacheSize)
	return &Renderer{style: style, cache: cache}
}

// Render converts an Article into a RenderedPage wrapped to width.
func (r *Renderer) Render(article *Article, width int) *RenderedPage {
	if width <= 0 {
		width = defaultRenderWidth
	}
	contentWidth := width - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return &RenderedPage{Title: article.Title, Content: article.TextContent}
	}

	conv := &mdConverter{}
	var md strings.Builder
	if article.Title != "" {
		md.WriteString("# " + article.Title + "\n\n")
	}
	if article.Byline != "" {
		md.WriteString("*" + article.Byline + "*\n\n")
	}
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		md.WriteString(conv.block(s, 0))
	})

	out, err := r.glamour(md.String(), contentWidth)
	if err != nil {
		out = md.String()
	}
	return &RenderedPage{
		Title:   article.Title,
		Content: out,
		Links:   conv.links,
	}
}

func (r *Renderer) glamour(markdown string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.cache.Get(width)
	if !ok {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if r.style == "" || r.style == "auto" {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle(r.style))
		}
		var err error
		tr, err = glamour.NewTermRenderer(opts...)
		if err != nil {
			return "", fmt.Errorf("creating glamour renderer: %w", err)
		}
		r.cache.Add(width, tr)
	}
	return tr.Render(markdown)
}

// mdConverter turns a sanitized HTML fragment into markdown, numbering links.
type mdConverter struct {
	links []Link
}

func (c *mdConverter) block(s *goquery.Selection, depth int) string {
	switch tag := goquery.NodeName(s); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(tag[1]-'0')) + " " + text + "\n\n"
	case "p":
		return c.paragraph(s)
	case "ul", "ol":
		return c.list(s, tag == "ol", depth)
	case "pre":
		return "```\n" + s.Text() + "\n```\n\n"
	case "blockquote":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			for _, line := range strings.Split(strings.TrimRight(c.block(child, 0), "\n"), "\n") {
				sb.WriteString("> " + line + "\n")
			}
		})
		return sb.String() + "\n"
	case "hr":
		return "\n---\n\n"
	case "div", "article", "section", "main", "header", "footer", "figure", "span":
		var sb strings.Builder
		s.Children().Each(func(_ int, child *goquery.Selection) {
			sb.WriteString(c.block(child, depth))
		})
		return sb.String()
	default:
		return c.paragraph(s)
	}
}

func (c *mdConverter) paragraph(s *goquery.Selection) string {
	var sb strings.Builder
	c.inline(s, &sb)
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func (c *mdConverter) inline(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			sb.WriteString(child.Text())
		case "a":
			sb.WriteString(c.link(child))
		case "strong", "b":
			sb.WriteString("**")
			c.inline(child, sb)
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
			c.inline(child, sb)
			sb.WriteString("*")
		case "code":
			sb.WriteString("`" + child.Text() + "`")
		case "br":
			sb.WriteString("  \n")
		case "ul", "ol":
			// rendered by list
		default:
			c.inline(child, sb)
		}
	})
}

func (c *mdConverter) link(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if href == "" {
		return text
	}
	c.links = append(c.links, Link{Index: len(c.links) + 1, Text: text, URL: href})
	return fmt.Sprintf("[%s](%s) **[%d]**", text, href, len(c.links))
}

func (c *mdConverter) list(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)
	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := indent + "- "
		if ordered {
			prefix = fmt.Sprintf("%s%d. ", indent, i+1)
		}
		var item strings.Builder
		c.inline(li, &item)
		sb.WriteString(prefix + strings.TrimSpace(item.String()) + "\n")

		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			sb.WriteString(c.list(nested, goquery.NodeName(nested) == "ol", depth+1))
		})
	})
	return sb.String() + "\n"
}
