package persuasion

import (
	"regexp"
	"strings"
	"unicode"
)

var punctRunRe = regexp.MustCompile(`[!?]{2,}`)

// capsContribution scores runs of ALL-CAPS words. Occasional acronyms are
// expected; the signal only triggers past the configured threshold and is
// capped so shouting alone cannot dominate the score.
func (s *Scorer) capsContribution(text string) float64 {
	count := 0
	for _, word := range strings.Fields(text) {
		if isAllCapsWord(word) {
			count++
		}
	}

	if count <= s.cfg.CapsRunTrigger {
		return 0
	}

	contrib := float64(count - s.cfg.CapsRunTrigger)
	if contrib > s.cfg.CapsContribCap {
		contrib = s.cfg.CapsContribCap
	}
	return contrib
}

// punctContribution scores consecutive !/? runs ("!!", "?!?", ...), capped
func (s *Scorer) punctContribution(text string) float64 {
	runs := punctRunRe.FindAllString(text, -1)
	if len(runs) == 0 {
		return 0
	}

	contrib := float64(len(runs)) * 2
	if contrib > s.cfg.PunctContribCap {
		contrib = s.cfg.PunctContribCap
	}
	return contrib
}

// clickbaitContribution scores known clickbait phrasings. Uncapped, but a
// small per-hit value keeps the typical contribution low.
func (s *Scorer) clickbaitContribution(text string) float64 {
	hits := s.clickbait.distinctHits(text)
	return float64(hits) * s.cfg.ClickbaitPerHit
}

// isAllCapsWord reports whether a token is an ALL-CAPS word of at least
// three letters (shorter tokens are overwhelmingly acronyms and initials)
func isAllCapsWord(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 3
}

// clickbaitMatcher holds the compiled clickbait phrase patterns
type clickbaitMatcher struct {
	patterns []*regexp.Regexp
}

func newClickbaitMatcher(patterns []string) *clickbaitMatcher {
	m := &clickbaitMatcher{}
	for _, p := range patterns {
		if re, err := regexp.Compile(`(?i)` + p); err == nil {
			m.patterns = append(m.patterns, re)
		}
	}
	return m
}

// distinctHits counts how many distinct patterns matched at least once
func (m *clickbaitMatcher) distinctHits(text string) int {
	hits := 0
	for _, re := range m.patterns {
		if re.MatchString(text) {
			hits++
		}
	}
	return hits
}
