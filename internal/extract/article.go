package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Article is the text content pulled out of a fetched page
type Article struct {
	Title string
	Text  string
	Meta  ArticleMeta
}

// ArticleMeta carries structural facts used by the transparency analyzer
type ArticleMeta struct {
	HasByline     bool // An author byline was found
	HasDate       bool // A publication date was found
	ExternalLinks int  // Outbound links in the article body
}

// ArticleExtractor extracts readable text from HTML
type ArticleExtractor struct{}

// NewArticleExtractor creates a new article extractor
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// Extract parses HTML and returns the article title, visible text, and
// structural metadata
func (e *ArticleExtractor) Extract(htmlContent string) (*Article, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	article := &Article{
		Title: findTitle(doc),
		Text:  extractVisibleText(doc),
	}
	article.Meta = extractMeta(doc)

	return article, nil
}

// findTitle prefers og:title, falls back to <title>
func findTitle(doc *html.Node) string {
	var title, ogTitle string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var prop, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property", "name":
						prop = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if prop == "og:title" && content != "" {
					ogTitle = content
				}
			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	if ogTitle != "" {
		return ogTitle
	}
	return title
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip non-content containers
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// extractMeta collects the structural facts the transparency analyzer needs
func extractMeta(doc *html.Node) ArticleMeta {
	var meta ArticleMeta

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var name string
				for _, attr := range n.Attr {
					if attr.Key == "name" || attr.Key == "property" {
						name = strings.ToLower(attr.Val)
					}
				}
				switch name {
				case "author", "article:author", "byl":
					meta.HasByline = true
				case "article:published_time", "date", "pubdate", "publishdate":
					meta.HasDate = true
				}
			case "time":
				meta.HasDate = true
			case "a":
				for _, attr := range n.Attr {
					if attr.Key == "href" && strings.HasPrefix(attr.Val, "http") {
						meta.ExternalLinks++
					}
				}
			}

			// Byline conventions in markup
			for _, attr := range n.Attr {
				if attr.Key == "class" || attr.Key == "rel" {
					lower := strings.ToLower(attr.Val)
					if strings.Contains(lower, "byline") || lower == "author" {
						meta.HasByline = true
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return meta
}
