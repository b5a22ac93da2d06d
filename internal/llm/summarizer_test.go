package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/credlens/credlens/internal/model"
)

// mockProvider implements Provider
type mockProvider struct {
	available bool
	summary   string
	err       error
	lastReq   *SummarizeRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return m.available }

func (m *mockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = &req
	if m.err != nil {
		return nil, m.err
	}
	return &SummarizeResponse{Summary: m.summary, Model: "mock-model"}, nil
}

func testReport() model.Report {
	score := 65
	return model.Report{
		Subject: "Example headline",
		Persuasion: model.PersuasionReport{
			Score:             40,
			ManipulationLevel: model.LevelLow,
			TacticCount:       1,
			TacticsFound: []model.Detection{
				{Type: "fear_mongering", Name: "Fear Mongering", Severity: model.SeverityMedium, Keywords: []string{"crisis"}},
			},
		},
		Dimensions: []model.NormalizedScore{
			{Dimension: model.DimensionSource, Value: 80, Resolved: true},
			{Dimension: model.DimensionBias, Value: 50, Resolved: true},
			{Dimension: model.DimensionFacts, Resolved: false},
		},
		Trust: model.TrustScore{
			Score:      &score,
			Level:      model.TrustLevelModerate,
			Confidence: model.ConfidencePartial,
		},
	}
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("NewSummarizer failed: %v", err)
	}

	if s.IsEnabled() {
		t.Error("expected disabled summarizer for empty provider")
	}
	if s.ProviderName() != "" {
		t.Errorf("expected empty provider name, got %q", s.ProviderName())
	}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Errorf("disabled summarizer should not error, got %v", err)
	}
	if summary != nil {
		t.Errorf("disabled summarizer should return nil, got %+v", summary)
	}
}

func TestSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestSummarizer_GenerateSummary(t *testing.T) {
	provider := &mockProvider{available: true, summary: "Signals look mixed."}
	s := &Summarizer{provider: provider, config: Config{Model: "test-model", MaxTokens: 500}}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}

	if !summary.Enabled {
		t.Error("expected enabled summary")
	}
	if summary.Provider != "mock" {
		t.Errorf("expected provider mock, got %q", summary.Provider)
	}
	if summary.Model != "mock-model" {
		t.Errorf("expected model from response, got %q", summary.Model)
	}
	if summary.SummaryMD != "Signals look mixed." {
		t.Errorf("unexpected summary text %q", summary.SummaryMD)
	}

	if provider.lastReq == nil {
		t.Fatal("provider was not called")
	}
	if provider.lastReq.Model != "test-model" || provider.lastReq.MaxTokens != 500 {
		t.Errorf("request did not carry config: %+v", provider.lastReq)
	}
}

func TestSummarizer_ProviderUnavailable(t *testing.T) {
	s := &Summarizer{provider: &mockProvider{available: false}}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Error("expected error when provider is unavailable")
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	s := &Summarizer{provider: &mockProvider{available: true, err: errors.New("rate limited")}}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Error("expected wrapped provider error")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())

	for _, want := range []string{
		"Example headline",
		"65/100",
		"partial confidence",
		"source=80",
		"bias=50",
		"Fear Mongering",
		"NEVER determines what is true",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}

	if strings.Contains(prompt, "facts=") {
		t.Error("unresolved dimensions must not appear in the prompt")
	}
}

func TestBuildPrompt_UnavailableTrust(t *testing.T) {
	report := testReport()
	report.Trust = model.TrustScore{Score: nil, Level: model.TrustLevelUnrated, Confidence: model.ConfidenceInsufficient}
	report.Persuasion.TacticsFound = nil
	report.Persuasion.TacticCount = 0

	prompt := BuildPrompt(report)

	if !strings.Contains(prompt, "unavailable") {
		t.Error("expected unavailable trust line")
	}
	if !strings.Contains(prompt, "(none)") {
		t.Error("expected empty tactics marker")
	}
}
