// Package verdict folds findings and verification results into the final
// per-clause severity. Aggregation is pure and total: same inputs, same
// verdict, and there is no input combination it refuses to rank.
package verdict

import (
	"github.com/clauseguard/clauseguard/internal/model"
)

// EngineVersion is stamped into every verdict so audit records identify
// the ruleset generation that produced them.
const EngineVersion = "clauseguard/1.0.0"

// Aggregator computes final severities.
type Aggregator struct{}

// New creates an aggregator.
func New() *Aggregator { return &Aggregator{} }

// Aggregate ranks one clause. Severity only ever moves up from the finding
// maximum: a proven contradiction (UNSAT) lifts the floor to HIGH, and an
// UNKNOWN verification never lowers what detection already established.
// Findings without an origin and rewrites without a justification are
// discarded here rather than trusted.
func (a *Aggregator) Aggregate(clause model.Clause, findings []model.Finding, verification *model.VerificationResult, rw *model.Rewrite) model.Verdict {
	kept := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Traceable() {
			kept = append(kept, f)
		}
	}

	severity := model.MaxFindingSeverity(kept)

	if verification != nil && verification.Status == model.StatusUNSAT {
		if model.SeverityHigh.Rank() > severity.Rank() {
			severity = model.SeverityHigh
		}
	}

	if rw != nil && len(rw.Justification) == 0 {
		rw = nil
	}

	return model.Verdict{
		ClauseID:      clause.ID,
		FinalSeverity: severity,
		Findings:      kept,
		Verification:  verification,
		Rewrite:       rw,
		EngineVersion: EngineVersion,
	}
}
