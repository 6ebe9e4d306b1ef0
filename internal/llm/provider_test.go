package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/clauseguard/clauseguard/internal/model"
)

func sampleResult() model.DocumentResult {
	return model.DocumentResult{
		Domain: model.DomainGeneric,
		Clauses: []model.Clause{
			{ID: "c001", Text: "当社は一切の責任を負わない。"},
			{ID: "c002", Text: "契約期間は1年間とする。"},
		},
		Verdicts: []model.Verdict{
			{
				ClauseID:      "c001",
				FinalSeverity: model.SeverityCritical,
				Findings: []model.Finding{{
					ClauseID:   "c001",
					PatternID:  "GEN-NG-001",
					Kind:       model.KindNG,
					Severity:   model.SeverityCritical,
					LegalBasis: []string{"jp-consumer-contract-act-8"},
					Rationale:  "全面免責条項",
				}},
				Verification: &model.VerificationResult{
					ClauseID: "c001",
					Status:   model.StatusUNSAT,
					Axioms:   []string{"jp-consumer-contract-act-8", "jp-civil-code-566"},
				},
			},
			{ClauseID: "c002", FinalSeverity: model.SeveritySafe},
		},
	}
}

func TestCollectCitations(t *testing.T) {
	got := CollectCitations(sampleResult())

	want := map[string]bool{
		"jp-consumer-contract-act-8": true,
		"jp-civil-code-566":          true,
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d unique citations, got %v", len(want), got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("Unexpected citation %s", id)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	result := sampleResult()
	prompt := BuildPrompt(result, CollectCitations(result))

	if !strings.Contains(prompt, "jp-consumer-contract-act-8") {
		t.Error("Expected the allowlist in the prompt")
	}
	if !strings.Contains(prompt, "c001") {
		t.Error("Expected flagged clauses listed in the prompt")
	}
	if strings.Contains(prompt, "c002 [SAFE]") {
		t.Error("Expected SAFE clauses not to be listed")
	}
	if !strings.Contains(prompt, "CRITICAL: 1") {
		t.Error("Expected severity counts in the prompt")
	}
}

func TestBuildPrompt_NoCitations(t *testing.T) {
	prompt := BuildPrompt(model.DocumentResult{}, nil)
	if !strings.Contains(prompt, "do not reference any legal provision") {
		t.Error("Expected an explicit no-citation instruction")
	}
}

func TestCheckCitations_AllAllowed(t *testing.T) {
	text := "The clause violates jp-consumer-contract-act-8 and conflicts with jp-civil-code-566."
	cited, err := checkCitations(text, []string{"jp-consumer-contract-act-8", "jp-civil-code-566"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cited) != 2 {
		t.Errorf("Expected 2 cited IDs, got %v", cited)
	}
}

func TestCheckCitations_RejectsLeak(t *testing.T) {
	text := "This clause is void under jp-invented-statute-99."
	_, err := checkCitations(text, []string{"jp-consumer-contract-act-8"})
	if err == nil {
		t.Fatal("Expected a citation leak to be rejected")
	}
	if !strings.Contains(err.Error(), "jp-invented-statute-99") {
		t.Errorf("Expected the leaked ID named in the error, got %v", err)
	}
}

func TestCheckCitations_NoCitationsIsFine(t *testing.T) {
	cited, err := checkCitations("The engine flagged one clause as high risk.", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cited) != 0 {
		t.Errorf("Expected no cited IDs, got %v", cited)
	}
}

func TestCheckCitations_Deduplicates(t *testing.T) {
	text := "jp-civil-code-540 applies; see jp-civil-code-540 again."
	cited, err := checkCitations(text, []string{"jp-civil-code-540"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cited) != 1 {
		t.Errorf("Expected deduplicated citations, got %v", cited)
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error for the disabled provider, got %v", err)
	}
	if p != nil {
		t.Error("Expected a nil provider when none is configured")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "bard"}); err == nil {
		t.Error("Expected an error for an unknown provider")
	}
}

func TestNewProvider_Selection(t *testing.T) {
	cases := []struct {
		provider string
		want     string
	}{
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"claude", "anthropic"},
		{"ollama", "ollama"},
	}
	for _, tc := range cases {
		p, err := NewProvider(Config{Provider: tc.provider, APIKey: "test-key"})
		if err != nil {
			t.Errorf("Provider %s: expected no error, got %v", tc.provider, err)
			continue
		}
		if p == nil || p.Name() != tc.want {
			t.Errorf("Provider %s: expected name %s", tc.provider, tc.want)
		}
	}
}

// stubProvider is a deterministic in-memory provider for summarizer tests.
type stubProvider struct {
	summary string
	fail    bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return !s.fail }

func (s *stubProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	return &SummarizeResponse{Summary: s.summary, Model: "stub-1"}, nil
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.IsEnabled() {
		t.Error("Expected the summarizer to be disabled")
	}

	advisory, err := s.GenerateAdvisory(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Expected no error from a disabled summarizer, got %v", err)
	}
	if advisory != nil {
		t.Error("Expected no advisory from a disabled summarizer")
	}
}

func TestSummarizer_NilReceiver(t *testing.T) {
	var s *Summarizer
	if s.IsEnabled() {
		t.Error("Expected a nil summarizer to read as disabled")
	}
	if s.ProviderName() != "" {
		t.Error("Expected an empty provider name on a nil summarizer")
	}
}

func TestSummarizer_GenerateAdvisory(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{summary: "One clause violates jp-consumer-contract-act-8."}}

	advisory, err := s.GenerateAdvisory(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if advisory == nil {
		t.Fatal("Expected an advisory")
	}
	if advisory.Provider != "stub" {
		t.Errorf("Expected provider stub, got %s", advisory.Provider)
	}
	if advisory.Model != "stub-1" {
		t.Errorf("Expected model stub-1, got %s", advisory.Model)
	}
	if advisory.Text == "" {
		t.Error("Expected advisory text")
	}
}

func TestSummarizer_UnavailableProvider(t *testing.T) {
	s := &Summarizer{provider: &stubProvider{fail: true}}
	if _, err := s.GenerateAdvisory(context.Background(), sampleResult()); err == nil {
		t.Error("Expected an error when the provider is unavailable")
	}
}
