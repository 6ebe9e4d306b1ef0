package lawyer

import "github.com/clauseguard/clauseguard/internal/model"

// Decomposer runs the three lawyer-thinking analyses over the full clause
// set of one document. Ambiguity and time-limit checks are per clause;
// coherence needs every clause materialized first.
type Decomposer struct {
	Coherence CoherenceChecker
}

// NewDecomposer creates a decomposer with the given duplication threshold.
func NewDecomposer(coherenceThreshold float64) *Decomposer {
	return &Decomposer{Coherence: CoherenceChecker{SimilarityThreshold: coherenceThreshold}}
}

// AnalyzeClause runs the per-clause detectors (ambiguity, time limit).
func (d *Decomposer) AnalyzeClause(clause model.Clause) []model.Finding {
	var findings []model.Finding
	findings = append(findings, DetectAmbiguity(clause)...)
	findings = append(findings, DetectMissingTimeLimit(clause)...)
	return findings
}

// AnalyzeDocument runs the cross-clause coherence check. Callers must pass
// the complete clause set; partial sets produce partial graphs.
func (d *Decomposer) AnalyzeDocument(clauses []model.Clause) []model.Finding {
	return d.Coherence.Check(clauses)
}
