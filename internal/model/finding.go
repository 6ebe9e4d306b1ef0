package model

// Finding is one risk or safety signal attached to a clause. Findings are
// produced by the pattern engine and the lawyer-thinking detectors and are
// never mutated after creation; a clause may carry any number of them.
type Finding struct {
	ClauseID   string   `json:"clause_id"`
	PatternID  string   `json:"pattern_id,omitempty"`  // Set when a catalog pattern produced the finding
	DetectorID string   `json:"detector_id,omitempty"` // Set when a lawyer-thinking detector produced it
	Kind       string   `json:"kind"`                  // NG, SAFE, WHITELIST
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`            // 0..1, display only; never gates emission
	LegalBasis []string `json:"legal_basis,omitempty"` // Citation IDs into the legal reference set
	Rationale  string   `json:"rationale,omitempty"`
	Matched    string   `json:"matched,omitempty"`     // Text fragment that triggered the finding
	Suppressed bool     `json:"suppressed,omitempty"`  // Whitelist suppression; CRITICAL findings are never suppressed
}

// Detector IDs for the lawyer-thinking decomposer.
const (
	DetectorAmbiguousClause = "AMBIGUOUS_CLAUSE"
	DetectorCoherenceCheck  = "COHERENCE_CHECK"
	DetectorNoTimeLimit     = "NO_TIME_LIMIT"
)

// Finding kinds, mirroring pattern kinds.
const (
	KindNG        = "NG"
	KindSafe      = "SAFE"
	KindWhitelist = "WHITELIST"
)

// Traceable reports whether the finding carries an origin (pattern or
// detector). Untraceable findings must never contribute to a verdict.
func (f Finding) Traceable() bool {
	return f.PatternID != "" || f.DetectorID != ""
}

// MaxFindingSeverity returns the worst severity among the given findings,
// ignoring suppressed findings and SAFE signals. Returns SAFE when nothing
// contributes.
func MaxFindingSeverity(findings []Finding) Severity {
	max := SeveritySafe
	for _, f := range findings {
		if f.Suppressed || f.Kind == KindSafe || f.Kind == KindWhitelist {
			continue
		}
		max = MaxSeverity(max, f.Severity)
	}
	return max
}
