package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.HTTP.RespectRobots = false
	cfg.LLM.Provider = ""
	return cfg
}

func TestPipeline_AnalyzeText(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	text := "This shocking and outrageous cover-up is clearly a disgraceful scandal. Act now before it is too late!"

	report, err := p.AnalyzeText(context.Background(), text, "Test Headline")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if report.Subject != "Test Headline" {
		t.Errorf("expected subject from title, got %q", report.Subject)
	}
	if report.SourceURL != "" {
		t.Errorf("text analysis should carry no source URL, got %q", report.SourceURL)
	}
	if report.Persuasion.Score <= 0 {
		t.Error("expected a positive manipulation score for loaded text")
	}

	// Source and transparency need a fetched page
	for _, d := range report.Dimensions {
		switch d.Dimension {
		case model.DimensionSource, model.DimensionTransparency:
			if d.Resolved {
				t.Errorf("%s should stay unresolved in text mode", d.Dimension)
			}
		case model.DimensionBias, model.DimensionManipulation:
			if !d.Resolved {
				t.Errorf("%s should resolve in text mode", d.Dimension)
			}
		}
	}

	if !report.Trust.Available() {
		t.Error("expected a composite score from bias and manipulation")
	}
	if report.Trust.Confidence == model.ConfidenceFull {
		t.Error("text mode cannot reach full confidence")
	}
}

func TestPipeline_AnalyzeText_CleanInput(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.AnalyzeText(context.Background(),
		"According to the agency, officials confirmed the schedule in a statement on Tuesday.", "")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if report.Persuasion.Score != 0 {
		t.Errorf("expected zero manipulation score, got %d", report.Persuasion.Score)
	}
	if report.Persuasion.ManipulationLevel != model.LevelMinimal {
		t.Errorf("expected minimal level, got %s", report.Persuasion.ManipulationLevel)
	}
}

func TestPipeline_AnalyzeURL(t *testing.T) {
	page := `<html><head>
	<title>Quarterly Figures Published</title>
	<meta name="author" content="Staff Writer">
	<meta property="article:published_time" content="2026-08-01T09:00:00Z">
</head><body>
	<p>The agency published its quarterly figures on Tuesday. According to the
	report, output rose by two percent. Officials confirmed the numbers in a
	statement, citing <a href="https://example.org/dataset">the dataset</a>.</p>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.AnalyzeURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}

	if report.Subject != "Quarterly Figures Published" {
		t.Errorf("expected subject from page title, got %q", report.Subject)
	}
	if report.FetchMeta.StatusCode != http.StatusOK {
		t.Errorf("expected fetch meta, got %+v", report.FetchMeta)
	}

	resolved := make(map[model.Dimension]bool)
	for _, d := range report.Dimensions {
		resolved[d.Dimension] = d.Resolved
	}
	for _, dim := range []model.Dimension{
		model.DimensionSource,
		model.DimensionBias,
		model.DimensionTransparency,
		model.DimensionManipulation,
	} {
		if !resolved[dim] {
			t.Errorf("expected %s to resolve in URL mode", dim)
		}
	}

	if !report.Trust.Available() {
		t.Error("expected a composite trust score")
	}
	if report.Trust.Confidence != model.ConfidencePartial {
		t.Errorf("expected partial confidence with author and facts unresolved, got %s", report.Trust.Confidence)
	}
}

func TestPipeline_AnalyzeURL_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	if _, err := p.AnalyzeURL(context.Background(), server.URL); err == nil {
		t.Error("expected fetch error to propagate")
	}
}

func TestPipeline_RenderReport(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.AnalyzeText(context.Background(), "This shocking scandal is outrageous!", "Render Test")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")

	if err := p.RenderReport(report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON output: %v", err)
	}
	if !strings.Contains(string(jsonData), `"manipulation_level"`) {
		t.Error("expected manipulation_level field in JSON output")
	}

	mdData, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read Markdown output: %v", err)
	}
	md := string(mdData)
	if !strings.Contains(md, "# Credibility Report: Render Test") {
		t.Error("expected Markdown header with subject")
	}
	if !strings.Contains(md, "## Manipulation Analysis") {
		t.Error("expected manipulation section")
	}
}
