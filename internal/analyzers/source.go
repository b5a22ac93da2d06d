// Package analyzers contains the heuristic sub-analyzers that produce
// per-dimension credibility signals. Each analyzer returns its result as a
// plain map with analyzer-specific keys; the scoring core resolves a
// numeric score out of those payloads through its configured field table
// and never special-cases individual analyzer shapes.
package analyzers

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Result is an opaque sub-analyzer payload. Keys are analyzer-specific
// and deliberately not standardized across analyzers.
type Result map[string]any

// SourceAnalyzer scores the credibility of a publication domain using
// config-driven tables: exact host mappings, trusted suffixes, and URL
// path patterns. Read-only after construction.
type SourceAnalyzer struct {
	cfg          model.SourceConfig
	pathPatterns []*compiledPathPattern
}

type compiledPathPattern struct {
	pattern *regexp.Regexp
	score   float64
}

// NewSourceAnalyzer creates a source analyzer from the given config
func NewSourceAnalyzer(cfg model.SourceConfig) *SourceAnalyzer {
	a := &SourceAnalyzer{cfg: cfg}

	for _, pp := range cfg.PathPatterns {
		if re, err := regexp.Compile(pp.Pattern); err == nil {
			a.pathPatterns = append(a.pathPatterns, &compiledPathPattern{
				pattern: re,
				score:   pp.Score,
			})
		}
	}

	return a
}

// Analyze scores the source of the given URL. Raw-text analyses have no
// source URL; that case resolves nothing and the dimension stays absent.
func (a *SourceAnalyzer) Analyze(rawURL string) Result {
	if rawURL == "" {
		return Result{}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return Result{}
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	score := a.scoreHost(host)

	// Path patterns override the domain score (opinion sections, sponsored
	// content and the like carry the section's credibility, not the outlet's)
	for _, pp := range a.pathPatterns {
		if pp.pattern.MatchString(parsed.Path) {
			score = pp.score
			break
		}
	}

	return Result{
		"credibility_score": score,
		"host":              host,
	}
}

// scoreHost resolves a host against the configured tables
func (a *SourceAnalyzer) scoreHost(host string) float64 {
	if score, ok := a.cfg.DomainMap[host]; ok {
		return score
	}

	// Subdomains inherit their parent's mapping (news.bbc.co.uk -> bbc.co.uk)
	for domain, score := range a.cfg.DomainMap {
		if strings.HasSuffix(host, "."+domain) {
			return score
		}
	}

	for _, suffix := range a.cfg.TrustedSuffixes {
		if strings.HasSuffix(host, "."+suffix) || host == suffix {
			return 90
		}
	}

	return a.cfg.DefaultScore
}
