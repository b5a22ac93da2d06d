package analyzers

import (
	"github.com/credlens/credlens/internal/extract"
)

// TransparencyAnalyzer scores how much an article discloses about itself:
// an author byline, a publication date, and outbound references. It emits
// its score under a nested key, which the extractor resolves via a dotted
// candidate path.
type TransparencyAnalyzer struct{}

// NewTransparencyAnalyzer creates a transparency analyzer
func NewTransparencyAnalyzer() *TransparencyAnalyzer {
	return &TransparencyAnalyzer{}
}

// Analyze scores the article's disclosure signals
func (a *TransparencyAnalyzer) Analyze(article *extract.Article) Result {
	if article == nil {
		return Result{}
	}

	score := 20.0 // Baseline: the text itself is disclosed

	if article.Meta.HasByline {
		score += 30
	}
	if article.Meta.HasDate {
		score += 20
	}

	// Outbound references, up to 30 points at 6+ links
	links := article.Meta.ExternalLinks
	if links > 6 {
		links = 6
	}
	score += float64(links) * 5

	return Result{
		"scores": map[string]any{
			"transparency": score,
		},
		"signals": map[string]any{
			"byline":         article.Meta.HasByline,
			"date":           article.Meta.HasDate,
			"external_links": article.Meta.ExternalLinks,
		},
	}
}
