package model

// Rewrite is a proposed clause edit justified by an unsat core. A rewrite
// without a justification is a protocol violation and is rejected by the
// aggregator.
type Rewrite struct {
	ClauseID      string        `json:"clause_id"`
	OriginalSpan  [2]int        `json:"original_span"`
	ProposedText  string        `json:"proposed_text"`
	Justification []Proposition `json:"justification"` // The exact unsat core that produced the rewrite
}

// Verdict is the single per-clause result surfaced to callers: the merged
// view of pattern findings, lawyer-thinking findings, formal verification,
// and any proof-carrying rewrite.
type Verdict struct {
	ClauseID      string              `json:"clause_id"`
	FinalSeverity Severity            `json:"final_severity"`
	Findings      []Finding           `json:"findings"`
	Verification  *VerificationResult `json:"verification,omitempty"`
	Rewrite       *Rewrite            `json:"rewrite,omitempty"`
	EngineVersion string              `json:"engine_version"`
}

// DocumentResult is the full output of one pipeline run.
type DocumentResult struct {
	Domain   Domain    `json:"domain"`
	Clauses  []Clause  `json:"clauses"`
	Verdicts []Verdict `json:"verdicts"`
	Summary  *Advisory `json:"advisory,omitempty"` // Optional plain-language summary, never affects verdicts
}

// Advisory is an optional LLM-generated explanation of the verdicts. It is
// strictly separated from severity computation and clearly labeled.
type Advisory struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}
