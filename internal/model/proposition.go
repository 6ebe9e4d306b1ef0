package model

import "time"

// Predicate is the fixed first-order vocabulary the translator extracts into.
type Predicate string

const (
	PredObligation    Predicate = "OBLIGATION"
	PredRight         Predicate = "RIGHT"
	PredCondition     Predicate = "CONDITION"
	PredTemporalBound Predicate = "TEMPORAL_BOUND"
	PredParty         Predicate = "PARTY"
)

// Proposition is one extracted logic atom with polarity. Order of extraction
// follows textual order; satisfiability ignores it but core minimization uses
// it for tie-breaks.
type Proposition struct {
	Predicate Predicate `json:"predicate"`
	Arguments []string  `json:"arguments"`
	Polarity  bool      `json:"polarity"`          // false means the negated atom was asserted
	Span      [2]int    `json:"span"`              // Byte range of the source fragment within the clause text
	Source    string    `json:"source,omitempty"`  // Fragment the proposition was extracted from
}

// Key returns the atom identity without polarity, used as the solver
// variable name.
func (p Proposition) Key() string {
	k := string(p.Predicate)
	for _, a := range p.Arguments {
		k += "|" + a
	}
	return k
}

// Translation is the result of translating one clause: the extracted
// propositions plus how much of the clause text they cover. Translation is
// lossy; low coverage downgrades verification to UNKNOWN.
type Translation struct {
	ClauseID     string        `json:"clause_id"`
	Propositions []Proposition `json:"propositions"`
	Coverage     float64       `json:"coverage"` // Fraction of clause text contributing to at least one proposition
}

// Axiom is a statutory constraint asserted alongside clause propositions.
// Axioms are static reference data keyed by citation ID.
type Axiom struct {
	CitationID string      `yaml:"citation_id" json:"citation_id"`
	Domain     Domain      `yaml:"domain" json:"domain"`
	Display    string      `yaml:"display,omitempty" json:"display,omitempty"`
	Clauses    [][]Literal `yaml:"cnf" json:"clauses"` // CNF: conjunction of disjunctions over literals
}

// Literal is one signed atom inside an axiom clause.
type Literal struct {
	Predicate Predicate `yaml:"predicate" json:"predicate"`
	Arguments []string  `yaml:"args" json:"arguments"`
	Negated   bool      `yaml:"negated,omitempty" json:"negated"`
}

// Key returns the literal's atom identity, matching Proposition.Key.
func (l Literal) Key() string {
	k := string(l.Predicate)
	for _, a := range l.Arguments {
		k += "|" + a
	}
	return k
}

// VerificationStatus is the three-valued solver outcome.
type VerificationStatus string

const (
	StatusSAT     VerificationStatus = "SAT"
	StatusUNSAT   VerificationStatus = "UNSAT"
	StatusUnknown VerificationStatus = "UNKNOWN"
)

// VerificationResult is the outcome of checking one clause against the
// applicable axioms. UNKNOWN covers solver timeouts, solver errors, and
// insufficient translation coverage; it is a risk signal, never a pass.
type VerificationResult struct {
	ClauseID  string             `json:"clause_id"`
	Status    VerificationStatus `json:"status"`
	UnsatCore []Proposition      `json:"unsat_core,omitempty"`
	Axioms    []string           `json:"axioms,omitempty"` // Citation IDs asserted for this check
	Reason    string             `json:"reason,omitempty"` // Why the status is UNKNOWN, when it is
	Elapsed   time.Duration      `json:"elapsed"`
}
