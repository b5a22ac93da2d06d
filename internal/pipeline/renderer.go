package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/credlens/credlens/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Credibility Report: %s\n\n", report.Subject)
	if report.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.FetchedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Trust Score\n\n")
	if report.Trust.Available() {
		fmt.Fprintf(&b, "**%d/100** (%s trust, %s confidence)\n\n", *report.Trust.Score, report.Trust.Level, report.Trust.Confidence)
	} else {
		fmt.Fprintf(&b, "**Unavailable** - fewer than two credibility dimensions could be resolved.\n\n")
	}

	fmt.Fprintf(&b, "| Dimension | Score | Resolved |\n")
	fmt.Fprintf(&b, "|-----------|-------|----------|\n")
	for _, d := range report.Dimensions {
		if d.Resolved {
			fmt.Fprintf(&b, "| %s | %.0f | yes |\n", d.Dimension, d.Value)
		} else {
			fmt.Fprintf(&b, "| %s | - | no |\n", d.Dimension)
		}
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Manipulation Analysis\n\n")
	fmt.Fprintf(&b, "Score: **%d/100** (%s), %d tactic(s) across %d words.\n\n",
		report.Persuasion.Score, report.Persuasion.ManipulationLevel,
		report.Persuasion.TacticCount, report.Persuasion.WordCount)

	for _, tactic := range report.Persuasion.TacticsFound {
		fmt.Fprintf(&b, "- **%s** (%s): %s\n", tactic.Name, tactic.Severity, tactic.Description)
		fmt.Fprintf(&b, "  Matched: %s\n", strings.Join(tactic.Keywords, ", "))
	}
	if len(report.Persuasion.TacticsFound) == 0 {
		fmt.Fprintf(&b, "No manipulation tactics detected.\n")
	}
	fmt.Fprintf(&b, "\n")

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\nGenerated by credlens. Scores describe heuristic signals, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}

// RenderLLMMarkdown writes the separate LLM summary document
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write LLM markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)

	if report.Trust.Available() {
		fmt.Printf("Trust score:   %d/100 (%s, %s confidence)\n", *report.Trust.Score, report.Trust.Level, report.Trust.Confidence)
	} else {
		fmt.Printf("Trust score:   unavailable (%s confidence)\n", report.Trust.Confidence)
	}

	fmt.Printf("Manipulation:  %d/100 (%s)\n", report.Persuasion.Score, report.Persuasion.ManipulationLevel)

	resolvedCount := 0
	for _, d := range report.Dimensions {
		if d.Resolved {
			resolvedCount++
		}
	}
	fmt.Printf("Dimensions:    %d/%d resolved\n", resolvedCount, len(report.Dimensions))

	if report.Persuasion.TacticCount > 0 {
		fmt.Printf("Tactics:       ")
		names := make([]string, 0, report.Persuasion.TacticCount)
		for _, tactic := range report.Persuasion.TacticsFound {
			names = append(names, tactic.Type)
		}
		fmt.Printf("%s\n", strings.Join(names, ", "))
	}
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// LLM summary goes to its own file so it stays visibly separate from
	// the scored report
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(renderLLMSummary(report.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// renderLLMSummary formats the LLM summary as a standalone document
func renderLLMSummary(summary *model.LLMSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# LLM Summary\n\n")
	fmt.Fprintf(&b, "> Generated by %s (%s). This commentary never affects the score.\n\n", summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")

	for _, warning := range summary.Warnings {
		fmt.Fprintf(&b, "\n**Warning:** %s\n", warning)
	}

	return b.String()
}
