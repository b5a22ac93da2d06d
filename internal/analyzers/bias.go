package analyzers

import (
	"regexp"
	"strings"
)

// BiasAnalyzer estimates how editorialized a text is by measuring the
// density of opinionated framing terms against hedged, attributive ones.
// The output is an objectivity score: 100 means no bias markers found.
type BiasAnalyzer struct {
	opinionated []*regexp.Regexp
	attributive []*regexp.Regexp
}

var opinionTerms = []string{
	"obviously", "clearly", "of course", "everyone agrees",
	"disgraceful", "shameful", "brilliant", "disastrous",
	"absurd", "ridiculous", "laughable", "pathetic",
	"without question", "no doubt",
}

var attributiveTerms = []string{
	"according to", "reported", "stated", "said",
	"data shows", "the study found", "officials confirmed",
	"spokesperson", "in a statement",
}

// NewBiasAnalyzer creates a bias analyzer
func NewBiasAnalyzer() *BiasAnalyzer {
	a := &BiasAnalyzer{}
	for _, t := range opinionTerms {
		a.opinionated = append(a.opinionated, wordPattern(t))
	}
	for _, t := range attributiveTerms {
		a.attributive = append(a.attributive, wordPattern(t))
	}
	return a
}

func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// Analyze scores the text's objectivity
func (a *BiasAnalyzer) Analyze(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	opinionHits := countMatches(a.opinionated, text)
	attribHits := countMatches(a.attributive, text)

	// Each opinionated marker costs 8 points; attributive sourcing earns
	// back 4, floor 0 and ceiling 100.
	score := 100.0 - float64(opinionHits)*8 + float64(attribHits)*4
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	label := "balanced"
	switch {
	case score < 40:
		label = "heavily editorialized"
	case score < 70:
		label = "editorialized"
	}

	return Result{
		"objectivity_score": score,
		"label":             label,
		"opinion_markers":   opinionHits,
		"attributions":      attribHits,
	}
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	count := 0
	for _, re := range patterns {
		count += len(re.FindAllString(text, -1))
	}
	return count
}
