package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Renderer writes review results to files and the terminal.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// RenderJSON writes the full result as indented JSON.
func (r *Renderer) RenderJSON(result *model.DocumentResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(result *model.DocumentResult, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Contract Review\n\nDomain: %s\nClauses: %d\n\n", result.Domain, len(result.Clauses))

	for _, v := range result.Verdicts {
		clause := findClause(result.Clauses, v.ClauseID)
		fmt.Fprintf(&b, "## %s (%s) - %s\n\n", v.ClauseID, clause.Label, v.FinalSeverity)
		fmt.Fprintf(&b, "> %s\n\n", truncate(clause.Text, 200))

		for _, f := range v.Findings {
			origin := f.PatternID
			if origin == "" {
				origin = f.DetectorID
			}
			suppressed := ""
			if f.Suppressed {
				suppressed = " (suppressed)"
			}
			fmt.Fprintf(&b, "- **%s** [%s]%s: %s\n", origin, f.Severity, suppressed, f.Rationale)
		}
		if v.Verification != nil {
			fmt.Fprintf(&b, "- Verification: %s", v.Verification.Status)
			if len(v.Verification.Axioms) > 0 {
				fmt.Fprintf(&b, " (violates %s)", strings.Join(v.Verification.Axioms, ", "))
			}
			if v.Verification.Reason != "" {
				fmt.Fprintf(&b, " - %s", v.Verification.Reason)
			}
			b.WriteString("\n")
		}
		if v.Rewrite != nil {
			fmt.Fprintf(&b, "\n**Proposed rewrite:**\n\n> %s\n", v.Rewrite.ProposedText)
		}
		b.WriteString("\n")
	}

	if result.Summary != nil {
		fmt.Fprintf(&b, "---\n\n*Advisory (%s/%s, informational only):*\n\n%s\n",
			result.Summary.Provider, result.Summary.Model, result.Summary.Text)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a one-screen overview to stdout.
func (r *Renderer) RenderSummary(result *model.DocumentResult) {
	counts := map[model.Severity]int{}
	for _, v := range result.Verdicts {
		counts[v.FinalSeverity]++
	}

	fmt.Printf("Reviewed %d clauses (%s domain)\n", len(result.Clauses), result.Domain)
	for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow, model.SeveritySafe} {
		if counts[sev] > 0 {
			fmt.Printf("  %-8s %d\n", sev, counts[sev])
		}
	}
	for _, v := range result.Verdicts {
		if v.FinalSeverity.Rank() >= model.SeverityHigh.Rank() {
			fmt.Printf("  ! %s: %s\n", v.ClauseID, truncate(findClause(result.Clauses, v.ClauseID).Text, 80))
		}
	}
}

// RenderReport renders the result to the requested outputs and prints the
// summary.
func (p *Pipeline) RenderReport(result *model.DocumentResult, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logf("wrote JSON: %s", jsonPath)
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logf("wrote markdown: %s", mdPath)
	}

	p.renderer.RenderSummary(result)
	return nil
}

func findClause(clauses []model.Clause, id string) model.Clause {
	for _, c := range clauses {
		if c.ID == id {
			return c
		}
	}
	return model.Clause{}
}

func truncate(s string, max int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
