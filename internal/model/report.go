package model

import "time"

// Report represents a complete credibility analysis
type Report struct {
	Subject   string    `json:"subject"`              // Subject of the analysis (article title or URL slug)
	SourceURL string    `json:"source_url,omitempty"` // URL that was analyzed (empty for raw text input)
	FetchedAt time.Time `json:"fetched_at"`           // When the analysis occurred
	FetchMeta FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata (URL mode only)

	Persuasion PersuasionReport  `json:"persuasion"` // Manipulation scoring breakdown
	Dimensions []NormalizedScore `json:"dimensions"` // Per-dimension resolved scores
	Trust      TrustScore        `json:"trust"`      // Composite trust verdict

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects score)
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// LLMSummary contains optional LLM-generated commentary.
// CRITICAL: This never affects scoring and is clearly separated.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"` // openai, ollama
	Model     string   `json:"model,omitempty"`    // Model name
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// SubjectFromTitle returns the report subject for a given article title,
// falling back to the URL when no title was extracted.
func SubjectFromTitle(title, url string) string {
	if title != "" {
		return title
	}
	return url
}
