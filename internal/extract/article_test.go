package extract

import (
	"strings"
	"testing"
)

func TestArticleExtractor_Basic(t *testing.T) {
	page := `<html>
<head>
	<title>Page Title</title>
	<script>var hidden = "should not appear";</script>
	<style>.x { color: red; }</style>
</head>
<body>
	<nav>Home | About</nav>
	<h1>Headline</h1>
	<p>First paragraph of the story.</p>
	<p>Second paragraph.</p>
	<footer>Copyright notice</footer>
</body>
</html>`

	article, err := NewArticleExtractor().Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if article.Title != "Page Title" {
		t.Errorf("expected title from <title>, got %q", article.Title)
	}
	if !strings.Contains(article.Text, "First paragraph of the story.") {
		t.Errorf("expected body text, got %q", article.Text)
	}
	for _, hidden := range []string{"should not appear", "color: red", "Home | About", "Copyright notice"} {
		if strings.Contains(article.Text, hidden) {
			t.Errorf("expected %q to be stripped from visible text", hidden)
		}
	}
}

func TestArticleExtractor_PrefersOGTitle(t *testing.T) {
	page := `<html><head>
	<title>Boring SEO Title | Site Name</title>
	<meta property="og:title" content="The Real Headline">
</head><body><p>Body.</p></body></html>`

	article, err := NewArticleExtractor().Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if article.Title != "The Real Headline" {
		t.Errorf("expected og:title to win, got %q", article.Title)
	}
}

func TestArticleExtractor_Meta(t *testing.T) {
	page := `<html><head>
	<meta name="author" content="Jane Reporter">
	<meta property="article:published_time" content="2026-08-12T10:00:00Z">
</head><body>
	<p>Story text with a <a href="https://example.org/study">study</a> and
	another <a href="https://example.net/data">dataset</a> and an
	internal <a href="/about">about</a> link.</p>
</body></html>`

	article, err := NewArticleExtractor().Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !article.Meta.HasByline {
		t.Error("expected byline from author meta tag")
	}
	if !article.Meta.HasDate {
		t.Error("expected date from article:published_time")
	}
	if article.Meta.ExternalLinks != 2 {
		t.Errorf("expected 2 external links, got %d", article.Meta.ExternalLinks)
	}
}

func TestArticleExtractor_BylineMarkup(t *testing.T) {
	page := `<html><body>
	<div class="article-byline">By Sam Writer</div>
	<time datetime="2026-08-12">August 12</time>
	<p>Body.</p>
</body></html>`

	article, err := NewArticleExtractor().Extract(page)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !article.Meta.HasByline {
		t.Error("expected byline from class markup")
	}
	if !article.Meta.HasDate {
		t.Error("expected date from time element")
	}
}

func TestArticleExtractor_NoStructure(t *testing.T) {
	article, err := NewArticleExtractor().Extract("just some loose text, no tags")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if article.Title != "" {
		t.Errorf("expected empty title, got %q", article.Title)
	}
	if !strings.Contains(article.Text, "loose text") {
		t.Errorf("expected loose text preserved, got %q", article.Text)
	}
	if article.Meta.HasByline || article.Meta.HasDate || article.Meta.ExternalLinks != 0 {
		t.Errorf("expected zero-value meta, got %+v", article.Meta)
	}
}
