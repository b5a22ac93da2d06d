package persuasion

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/credlens/credlens/internal/catalog"
	"github.com/credlens/credlens/internal/model"
)

// Scorer scans text against the indicator catalog and produces a bounded,
// explainable manipulation score. Stateless apart from the read-only
// catalog, so a single Scorer is safe for concurrent use.
type Scorer struct {
	catalog   *catalog.Catalog
	cfg       model.ScoringConfig
	clickbait *clickbaitMatcher
}

// NewScorer creates a scorer over the given catalog and calibration config
func NewScorer(cat *catalog.Catalog, cfg model.ScoringConfig) *Scorer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Scorer{
		catalog:   cat,
		cfg:       cfg,
		clickbait: newClickbaitMatcher(catalog.DefaultClickbaitPatterns()),
	}
}

// Analyze scores the given text (plus optional title) for manipulative
// language. Malformed or empty input degrades to a zero report; Analyze
// never fails.
func (s *Scorer) Analyze(text, title string) model.PersuasionReport {
	if strings.TrimSpace(text) == "" && strings.TrimSpace(title) == "" {
		return model.EmptyPersuasionReport()
	}

	scanText := text
	if title != "" {
		scanText = text + " " + title
	}

	wordCount := countWords(text)
	lengthFactor := s.lengthFactor(wordCount)

	// Category matching with diminishing returns past the third match
	var detections []model.Detection
	rawTotal := 0.0

	for _, cat := range s.catalog.All() {
		matched := distinctMatches(s.catalog.Matchers(cat.ID), scanText)
		n := len(matched)
		if n == 0 {
			continue
		}

		score := cat.Weight * s.tierFactor(n) * lengthFactor
		rawTotal += score

		detections = append(detections, model.Detection{
			Type:        cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Keywords:    matched,
			Count:       n,
			Score:       score,
			Severity:    s.severity(score, cat.Weight),
		})
	}

	// Independent bounded heuristics; each capped so no single signal dominates
	rawTotal += s.capsContribution(scanText)
	rawTotal += s.punctContribution(scanText)
	rawTotal += s.clickbaitContribution(scanText)

	normalized := int(math.Round(rawTotal / s.cfg.NormalizationDivisor * 100))
	if normalized > 100 {
		normalized = 100
	}
	if normalized < 0 {
		normalized = 0
	}

	// Breadth clamp: an extreme verdict needs breadth of evidence, not just
	// one or two very high-weight categories.
	if normalized > s.cfg.BreadthClampThreshold && len(detections) < s.cfg.BreadthMinTactics {
		normalized = s.cfg.BreadthClampScore
	}

	// Severity-descending, insertion order preserved within a tier
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Severity.Rank() > detections[j].Severity.Rank()
	})

	if detections == nil {
		detections = []model.Detection{}
	}

	return model.PersuasionReport{
		Score:             normalized,
		TacticsFound:      detections,
		ManipulationLevel: model.LevelForScore(normalized),
		TacticCount:       len(detections),
		WordCount:         wordCount,
	}
}

// tierFactor rewards variety of manipulative signal over brute repetition:
// the marginal contribution strictly shrinks after the third distinct match.
func (s *Scorer) tierFactor(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 1.0
	case n == 2:
		return s.cfg.PairFactor
	case n == 3:
		return s.cfg.TripleFactor
	default:
		return s.cfg.TripleFactor + s.cfg.ExtraMatchStep*float64(n-3)
	}
}

// lengthFactor adjusts for document length: long-form content naturally
// contains more incidental hits, short keyword-dense text is more likely
// intentionally manipulative.
func (s *Scorer) lengthFactor(wordCount int) float64 {
	if wordCount > s.cfg.LongFormWords {
		return s.cfg.LongFormFactor
	}
	if wordCount < s.cfg.ShortFormWords {
		return s.cfg.ShortFormFactor
	}
	return 1.0
}

// severity tiers a category score against its own weight
func (s *Scorer) severity(score, weight float64) model.Severity {
	switch {
	case score < weight*1.2:
		return model.SeverityLow
	case score < weight*2:
		return model.SeverityMedium
	default:
		return model.SeverityHigh
	}
}

// distinctMatches collects deduplicated matched terms across all matchers
// of one category
func distinctMatches(matchers []*regexp.Regexp, text string) []string {
	var terms []string
	seen := make(map[string]bool)

	for _, re := range matchers {
		for _, m := range re.FindAllString(text, -1) {
			key := strings.ToLower(m)
			if !seen[key] {
				seen[key] = true
				terms = append(terms, key)
			}
		}
	}

	return terms
}

// countWords counts whitespace-separated tokens
func countWords(text string) int {
	return len(strings.Fields(text))
}
