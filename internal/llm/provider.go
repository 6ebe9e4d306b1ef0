// Package llm generates optional plain-language advisories about review
// results. The advisory layer is strictly separated from the verdict
// pipeline: nothing a model says can change a severity, and every legal
// citation it is allowed to use comes from the verdicts themselves.
package llm

import (
	"context"
	"fmt"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Provider defines the interface for advisory providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates an advisory for the review result with strict
	// citation mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for advisory generation
type SummarizeRequest struct {
	// Result is the review result to explain
	Result model.DocumentResult

	// Citations is the STRICT allowlist of legal citation IDs the model
	// may reference. Every entry comes from a finding or verification
	// result; the model cannot introduce law the pipeline never cited.
	Citations []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the advisory output
type SummarizeResponse struct {
	// Summary is the generated advisory text
	Summary string

	// CitedIDs are the citation IDs the model actually used (for review)
	CitedIDs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds advisory provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// BuildPrompt constructs the default advisory prompt with strict citation
// mode.
func BuildPrompt(result model.DocumentResult, citations []string) string {
	bySeverity := map[model.Severity]int{}
	for _, v := range result.Verdicts {
		bySeverity[v.FinalSeverity]++
	}

	prompt := fmt.Sprintf(`You are explaining the results of an automated contract clause review. The review engine already decided every severity - you describe its findings, you NEVER change or second-guess them.

CRITICAL RULES:
1. You MUST ONLY reference legal provisions from this allowed list of citation IDs:
%s

2. DO NOT cite statutes, cases, or articles outside this list.
3. DO NOT give legal advice. Describe what the engine flagged and why.
4. If a clause is UNKNOWN, say the engine could not verify it - never call it safe.

Review summary:
- Domain: %s
- Clauses reviewed: %d
- CRITICAL: %d, HIGH: %d, MEDIUM: %d, LOW: %d, SAFE: %d

Flagged clauses:
`, joinCitations(citations), result.Domain, len(result.Clauses),
		bySeverity[model.SeverityCritical], bySeverity[model.SeverityHigh],
		bySeverity[model.SeverityMedium], bySeverity[model.SeverityLow],
		bySeverity[model.SeveritySafe])

	listed := 0
	for _, v := range result.Verdicts {
		if v.FinalSeverity == model.SeveritySafe || listed >= 10 {
			continue
		}
		rationale := ""
		for _, f := range v.Findings {
			if f.Rationale != "" {
				rationale = f.Rationale
				break
			}
		}
		prompt += fmt.Sprintf("- %s [%s]: %s\n", v.ClauseID, v.FinalSeverity, rationale)
		listed++
	}

	prompt += "\nProvide a 3-5 sentence plain-language summary for a non-lawyer, citing only allowed IDs."
	return prompt
}

func joinCitations(ids []string) string {
	if len(ids) == 0 {
		return "(No citations available - do not reference any legal provision)"
	}
	result := ""
	for i, id := range ids {
		if i >= 20 {
			result += fmt.Sprintf("\n... and %d more", len(ids)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", id)
	}
	return result
}

// CollectCitations gathers the citation allowlist from a review result.
func CollectCitations(result model.DocumentResult) []string {
	seen := map[string]bool{}
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, v := range result.Verdicts {
		for _, f := range v.Findings {
			for _, id := range f.LegalBasis {
				add(id)
			}
		}
		if v.Verification != nil {
			for _, id := range v.Verification.Axioms {
				add(id)
			}
		}
	}
	return out
}
