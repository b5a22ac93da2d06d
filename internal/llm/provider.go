package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the analysis to summarize. The prompt is built ONLY from
	// report data so the summary cannot introduce outside claims.
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama's OpenAI-compatible API)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The LLM only
// sees scored facts from the report and is told to describe signals,
// never to judge truth.
func BuildPrompt(report model.Report) string {
	trustLine := "unavailable (insufficient resolved dimensions)"
	if report.Trust.Available() {
		trustLine = fmt.Sprintf("%d/100 (%s confidence)", *report.Trust.Score, report.Trust.Confidence)
	}

	var dims []string
	for _, d := range report.Dimensions {
		if d.Resolved {
			dims = append(dims, fmt.Sprintf("%s=%.0f", d.Dimension, d.Value))
		}
	}
	dimLine := "(none resolved)"
	if len(dims) > 0 {
		dimLine = strings.Join(dims, ", ")
	}

	prompt := fmt.Sprintf(`You are summarizing a credlens credibility report. Credlens measures heuristic signals - it NEVER determines what is true.

CRITICAL RULES:
1. Describe only the signals listed below. Do not add outside knowledge about the subject.
2. Never say "this is true" or "this is false" - only describe signals.
3. If the trust score is unavailable, say that the analysis could not corroborate enough independent signals.

Report:
- Subject: %s
- Trust score: %s
- Resolved dimensions: %s
- Manipulation score: %d/100 (%s), %d tactic(s) detected

Detected tactics:
`, report.Subject, trustLine, dimLine,
		report.Persuasion.Score, report.Persuasion.ManipulationLevel, report.Persuasion.TacticCount)

	for i, tactic := range report.Persuasion.TacticsFound {
		if i >= 5 {
			prompt += fmt.Sprintf("... and %d more\n", len(report.Persuasion.TacticsFound)-5)
			break
		}
		prompt += fmt.Sprintf("- %s (%s): %s\n", tactic.Name, tactic.Severity, strings.Join(tactic.Keywords, ", "))
	}
	if len(report.Persuasion.TacticsFound) == 0 {
		prompt += "(none)\n"
	}

	prompt += "\nProvide a 3-4 sentence summary of the signal quality, not the subject matter."

	return prompt
}
