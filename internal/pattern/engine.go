// Package pattern matches clauses against the catalog of risk patterns,
// whitelists, and golden structures.
package pattern

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/clauseguard/clauseguard/internal/catalog"
	"github.com/clauseguard/clauseguard/internal/model"
)

// Engine evaluates a clause against one loaded catalog. Matching is
// deterministic and order-independent across NG patterns: every matching
// pattern emits a finding, there is no early exit.
type Engine struct {
	cat             *catalog.Catalog
	goldenThreshold float64
	guards          map[string]*vm.Program
}

// New compiles the engine for a catalog. Guard expressions are compiled once
// here; a bad guard is a catalog error, not a per-clause error.
func New(cat *catalog.Catalog, goldenThreshold float64) (*Engine, error) {
	guards := make(map[string]*vm.Program)
	for _, p := range cat.Patterns {
		if p.Guard == "" {
			continue
		}
		prog, err := expr.Compile(p.Guard, expr.Env(guardEnv("", "", "")), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("pattern %s: bad guard: %w", p.ID, err)
		}
		guards[p.ID] = prog
	}
	return &Engine{cat: cat, goldenThreshold: goldenThreshold, guards: guards}, nil
}

func guardEnv(text, context string, domain model.Domain) map[string]any {
	return map[string]any{
		"text":    text,
		"context": context,
		"domain":  string(domain),
	}
}

// Match evaluates all catalog patterns against one clause. context carries
// surrounding clause text for guard expressions. Findings are returned in
// catalog order; whitelist suppression is applied here but CRITICAL findings
// are never suppressed.
func (e *Engine) Match(clause model.Clause, context string) []model.Finding {
	var findings []model.Finding
	whitelisted := false

	ordered := make([]model.Pattern, len(e.cat.Patterns))
	copy(ordered, e.cat.Patterns)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, p := range ordered {
		re := e.cat.Matcher(p.ID)
		if re == nil {
			continue
		}
		loc := re.FindStringIndex(clause.Text)
		if loc == nil {
			continue
		}
		if prog, ok := e.guards[p.ID]; ok {
			pass, err := expr.Run(prog, guardEnv(clause.Text, context, e.cat.Domain))
			// A failed guard never drops a risk signal; it fails open.
			if err == nil {
				if b, ok := pass.(bool); ok && !b {
					continue
				}
			}
		}
		f := model.Finding{
			ClauseID:   clause.ID,
			PatternID:  p.ID,
			Kind:       string(p.Kind),
			Severity:   p.Severity,
			Confidence: p.Specificity.Confidence(),
			LegalBasis: p.LegalBasis,
			Rationale:  p.Rationale,
			Matched:    clause.Text[loc[0]:loc[1]],
		}
		if p.Kind == model.PatternWhitelist {
			whitelisted = true
			f.Severity = model.SeveritySafe
		}
		findings = append(findings, f)
	}

	// Golden-structure comparison: a near match to a canonical safe shape
	// records a SAFE finding. Risk and safety signals coexist; aggregation
	// resolves conflicts, not matching.
	for _, g := range e.cat.Goldens {
		sim := Similarity(clause.Text, g.Template)
		if sim >= e.goldenThreshold {
			findings = append(findings, model.Finding{
				ClauseID:   clause.ID,
				PatternID:  g.ID,
				Kind:       model.KindSafe,
				Severity:   model.SeveritySafe,
				Confidence: sim,
				LegalBasis: g.LegalBasis,
				Rationale:  fmt.Sprintf("structurally matches golden structure %s (similarity %.2f)", g.Name, sim),
			})
		}
	}

	if whitelisted {
		for i := range findings {
			if findings[i].Kind == model.KindNG && findings[i].Severity != model.SeverityCritical {
				findings[i].Suppressed = true
			}
		}
	}
	return findings
}
