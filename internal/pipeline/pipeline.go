package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/credlens/credlens/internal/analyzers"
	"github.com/credlens/credlens/internal/cache"
	"github.com/credlens/credlens/internal/catalog"
	"github.com/credlens/credlens/internal/extract"
	"github.com/credlens/credlens/internal/llm"
	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/persuasion"
	"github.com/credlens/credlens/internal/trust"
	"github.com/credlens/credlens/internal/util"
)

// Pipeline orchestrates the complete credibility analysis: fetch, article
// extraction, sub-analyzers, persuasion scoring, field resolution, and
// trust aggregation.
type Pipeline struct {
	fetcher      *Fetcher
	articles     *extract.ArticleExtractor
	source       *analyzers.SourceAnalyzer
	bias         *analyzers.BiasAnalyzer
	transparency *analyzers.TransparencyAnalyzer
	scorer       *persuasion.Scorer
	aggregator   *trust.Aggregator
	renderer     *Renderer
	summarizer   *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	config       *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}

	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	)

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".credlens", "cache")
			}
		}
		if dir != "" {
			fetcher.SetCache(cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL))
		}
	}

	if cfg.HTTP.RespectRobots {
		fetcher.SetRobots(util.NewRobotsChecker(
			util.NormalizeUserAgent(cfg.HTTP.UserAgent),
			10*time.Second,
		))
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		fetcher:      fetcher,
		articles:     extract.NewArticleExtractor(),
		source:       analyzers.NewSourceAnalyzer(cfg.Source),
		bias:         analyzers.NewBiasAnalyzer(),
		transparency: analyzers.NewTransparencyAnalyzer(),
		scorer:       persuasion.NewScorer(cat, cfg.Scoring),
		aggregator:   trust.NewAggregator(cfg.Scoring),
		renderer:     NewRenderer(cfg.Output.IncludeFooter),
		summarizer:   summarizer,
		config:       cfg,
	}, nil
}

// AnalyzeURL fetches a URL and produces a complete credibility report
func (p *Pipeline) AnalyzeURL(ctx context.Context, url string) (*model.Report, error) {
	fetchResult, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	article, err := p.articles.Extract(fetchResult.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	report := p.analyze(article, fetchResult.FinalURL)
	report.FetchMeta = fetchResult.Meta
	report.Subject = model.SubjectFromTitle(article.Title, fetchResult.FinalURL)

	p.summarize(ctx, report)
	return report, nil
}

// AnalyzeText analyzes raw text directly. Source and transparency signals
// require a fetched page, so those dimensions stay unresolved here.
func (p *Pipeline) AnalyzeText(ctx context.Context, text, title string) (*model.Report, error) {
	article := &extract.Article{Title: title, Text: text}

	report := p.analyze(article, "")
	report.Subject = model.SubjectFromTitle(title, "(text input)")

	p.summarize(ctx, report)
	return report, nil
}

// analyze runs the scoring core over an extracted article
func (p *Pipeline) analyze(article *extract.Article, sourceURL string) *model.Report {
	persuasionReport := p.scorer.Analyze(article.Text, article.Title)

	// Sub-analyzer payloads, keyed by dimension. Each payload uses its own
	// analyzer-specific field names; resolution below is table-driven.
	payloads := map[model.Dimension]analyzers.Result{
		model.DimensionBias: p.bias.Analyze(article.Text),
		model.DimensionManipulation: {
			"integrity_score": float64(100 - persuasionReport.Score),
		},
	}

	if sourceURL != "" {
		payloads[model.DimensionSource] = p.source.Analyze(sourceURL)
		payloads[model.DimensionTransparency] = p.transparency.Analyze(article)
	}

	dimensions, trustScore := p.resolveAndCombine(payloads)

	return &model.Report{
		SourceURL:  sourceURL,
		FetchedAt:  time.Now().UTC(),
		Persuasion: persuasionReport,
		Dimensions: dimensions,
		Trust:      trustScore,
	}
}

// resolveAndCombine resolves each configured dimension's score out of its
// payload and aggregates the resolved set into a composite
func (p *Pipeline) resolveAndCombine(payloads map[model.Dimension]analyzers.Result) ([]model.NormalizedScore, model.TrustScore) {
	var dimensions []model.NormalizedScore
	resolved := make(map[model.Dimension]float64)
	weights := make(map[model.Dimension]float64)
	var configured []model.Dimension

	for _, spec := range p.config.Dimensions {
		configured = append(configured, spec.ID)
		weights[spec.ID] = spec.Weight

		ns := model.NormalizedScore{Dimension: spec.ID}
		if payload, ok := payloads[spec.ID]; ok {
			if value, found := extract.Resolve(map[string]any(payload), spec.Fields); found {
				ns.Value = clampValue(value)
				ns.Resolved = true
				resolved[spec.ID] = ns.Value
			}
		}
		dimensions = append(dimensions, ns)
	}

	return dimensions, p.aggregator.Combine(resolved, weights, configured)
}

// summarize attaches the optional LLM summary. Runs AFTER scoring and
// never affects the score.
func (p *Pipeline) summarize(ctx context.Context, report *model.Report) {
	if p.summarizer == nil || !p.summarizer.IsEnabled() {
		return
	}

	summary, err := p.summarizer.GenerateSummary(ctx, *report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		return
	}
	report.LLM = summary
}

func clampValue(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
