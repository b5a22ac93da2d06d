package model

import "time"

// Config is the complete credlens configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Dimensions  []DimensionSpec   `yaml:"dimensions" mapstructure:"dimensions"`
	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls fetching behavior
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls the fetched-page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers" mapstructure:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// ScoringConfig holds the persuasion and aggregation calibration constants.
// None of these have a documented empirical derivation; they are exposed
// here so they can be recalibrated against labeled data without code changes.
type ScoringConfig struct {
	// Tier factors reward variety of matched terms over repetition:
	// 1 match contributes weight x 1.0, 2 matches x PairFactor,
	// 3 matches x TripleFactor, each match past 3 adds ExtraMatchStep.
	PairFactor     float64 `yaml:"pair_factor" mapstructure:"pair_factor"`
	TripleFactor   float64 `yaml:"triple_factor" mapstructure:"triple_factor"`
	ExtraMatchStep float64 `yaml:"extra_match_step" mapstructure:"extra_match_step"`

	// Length adjustment: long-form text naturally collects incidental hits,
	// short keyword-dense text is more likely intentional.
	LongFormWords   int     `yaml:"long_form_words" mapstructure:"long_form_words"`
	LongFormFactor  float64 `yaml:"long_form_factor" mapstructure:"long_form_factor"`
	ShortFormWords  int     `yaml:"short_form_words" mapstructure:"short_form_words"`
	ShortFormFactor float64 `yaml:"short_form_factor" mapstructure:"short_form_factor"`

	// Independent heuristics, each capped so no single signal dominates
	CapsRunTrigger  int     `yaml:"caps_run_trigger" mapstructure:"caps_run_trigger"`
	CapsContribCap  float64 `yaml:"caps_contrib_cap" mapstructure:"caps_contrib_cap"`
	PunctContribCap float64 `yaml:"punct_contrib_cap" mapstructure:"punct_contrib_cap"`
	ClickbaitPerHit float64 `yaml:"clickbait_per_hit" mapstructure:"clickbait_per_hit"`

	// NormalizationDivisor raw points correspond to a score of 100
	NormalizationDivisor float64 `yaml:"normalization_divisor" mapstructure:"normalization_divisor"`

	// Breadth clamp: a near-maximal score needs at least BreadthMinTactics
	// distinct tactics, otherwise it is clamped to BreadthClampScore.
	BreadthClampThreshold int `yaml:"breadth_clamp_threshold" mapstructure:"breadth_clamp_threshold"`
	BreadthClampScore     int `yaml:"breadth_clamp_score" mapstructure:"breadth_clamp_score"`
	BreadthMinTactics     int `yaml:"breadth_min_tactics" mapstructure:"breadth_min_tactics"`

	// SingleSourceCeiling caps a composite backed by only one dimension
	SingleSourceCeiling int `yaml:"single_source_ceiling" mapstructure:"single_source_ceiling"`
}

// CatalogConfig points at an optional indicator catalog file.
// When Path is empty the built-in catalog is used.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DimensionSpec configures one credibility dimension: its aggregation
// weight and the ordered candidate fields used to resolve its score out
// of the sub-analyzer payload. The order is the single auditable artifact
// for field fallback - first matching candidate wins.
type DimensionSpec struct {
	ID     Dimension `yaml:"id" mapstructure:"id"`
	Weight float64   `yaml:"weight" mapstructure:"weight"`
	Fields []string  `yaml:"fields" mapstructure:"fields"`
}

// SourceConfig configures the source-credibility analyzer
type SourceConfig struct {
	// DomainMap maps exact hosts to a 0-100 credibility score
	DomainMap map[string]float64 `yaml:"domain_map" mapstructure:"domain_map"`

	// TrustedSuffixes are domain suffixes treated as high credibility
	// (e.g. "gov", "edu"); matched against the registrable host suffix.
	TrustedSuffixes []string `yaml:"trusted_suffixes" mapstructure:"trusted_suffixes"`

	// PathPatterns adjust the score when a URL path matches a regex
	PathPatterns []SourcePathPattern `yaml:"path_patterns" mapstructure:"path_patterns"`

	// DefaultScore is used for unknown hosts
	DefaultScore float64 `yaml:"default_score" mapstructure:"default_score"`
}

// SourcePathPattern maps a URL path regex to a score override
type SourcePathPattern struct {
	Pattern string  `yaml:"pattern" mapstructure:"pattern"`
	Score   float64 `yaml:"score" mapstructure:"score"`
}

// LLMConfig configures the optional summary provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" = disabled
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Credlens/0.1 (+https://github.com/credlens/credlens)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.credlens/cache at runtime
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Scoring:    DefaultScoringConfig(),
		Dimensions: DefaultDimensions(),
		Source:     DefaultSourceConfig(),
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// DefaultScoringConfig returns the calibration constants carried over
// from the original heuristics
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PairFactor:            1.5,
		TripleFactor:          1.8,
		ExtraMatchStep:        0.1,
		LongFormWords:         1000,
		LongFormFactor:        0.8,
		ShortFormWords:        200,
		ShortFormFactor:       1.2,
		CapsRunTrigger:        3,
		CapsContribCap:        10,
		PunctContribCap:       8,
		ClickbaitPerHit:       3,
		NormalizationDivisor:  50,
		BreadthClampThreshold: 90,
		BreadthClampScore:     80,
		BreadthMinTactics:     4,
		SingleSourceCeiling:   75,
	}
}

// DefaultDimensions returns the configured dimensions with their weights
// and field-resolution order. Conceptually identical values arrive under
// analyzer-specific keys, so each dimension carries its own fallback list.
func DefaultDimensions() []DimensionSpec {
	return []DimensionSpec{
		{ID: DimensionSource, Weight: 2, Fields: []string{"credibility_score", "score", "rating"}},
		{ID: DimensionAuthor, Weight: 1, Fields: []string{"author_score", "credibility_score", "score"}},
		{ID: DimensionBias, Weight: 1.5, Fields: []string{"objectivity_score", "score", "bias_score"}},
		{ID: DimensionFacts, Weight: 2, Fields: []string{"fact_score", "accuracy", "score"}},
		{ID: DimensionTransparency, Weight: 1, Fields: []string{"transparency_score", "scores.transparency", "score"}},
		{ID: DimensionManipulation, Weight: 1.5, Fields: []string{"integrity_score", "score"}},
	}
}

// DefaultSourceConfig returns the built-in domain credibility tables
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		DomainMap: map[string]float64{
			"reuters.com":     92,
			"apnews.com":      92,
			"bbc.com":         88,
			"bbc.co.uk":       88,
			"nature.com":      95,
			"science.org":     95,
			"nytimes.com":     82,
			"theguardian.com": 80,
			"wsj.com":         82,
			"economist.com":   84,
			"npr.org":         85,
			"propublica.org":  86,
		},
		TrustedSuffixes: []string{"gov", "edu", "int"},
		PathPatterns: []SourcePathPattern{
			{Pattern: `(?i)/opinion(s)?/`, Score: 55},
			{Pattern: `(?i)/blog(s)?/`, Score: 50},
			{Pattern: `(?i)/sponsored/`, Score: 30},
			{Pattern: `(?i)/press-release(s)?/`, Score: 40},
		},
		DefaultScore: 50,
	}
}

// FindDimension returns the spec for a dimension ID, if configured
func (c *Config) FindDimension(id Dimension) (DimensionSpec, bool) {
	for _, d := range c.Dimensions {
		if d.ID == id {
			return d, true
		}
	}
	return DimensionSpec{}, false
}
