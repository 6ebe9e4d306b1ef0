package model

// PatternKind classifies a catalog entry.
type PatternKind string

const (
	PatternNG        PatternKind = "NG"        // Risk pattern; a match emits a finding at the declared severity
	PatternSafe      PatternKind = "SAFE"      // Known-safe shape; a match records a SAFE finding
	PatternWhitelist PatternKind = "WHITELIST" // Suppresses non-CRITICAL NG findings for the clause
)

// MatcherSpecificity orders matcher styles from most to least specific; it
// drives the informational confidence on findings.
type MatcherSpecificity string

const (
	SpecificityExact      MatcherSpecificity = "exact"      // Exact phrase
	SpecificityStructural MatcherSpecificity = "structural" // Structure-anchored regex
	SpecificityHeuristic  MatcherSpecificity = "heuristic"  // Loose keyword heuristic
)

// Confidence maps matcher specificity to a display confidence.
func (m MatcherSpecificity) Confidence() float64 {
	switch m {
	case SpecificityExact:
		return 0.95
	case SpecificityStructural:
		return 0.80
	default:
		return 0.60
	}
}

// Pattern is one declarative catalog entry. Patterns are loaded once per run
// and never mutated. The matcher is a regular expression; Guard is an
// optional expr-lang condition over {text, context, domain} that must hold
// for the pattern to fire.
type Pattern struct {
	ID          string             `yaml:"id" json:"id"`
	Kind        PatternKind        `yaml:"kind" json:"kind"`
	Domain      Domain             `yaml:"domain" json:"domain"`
	Name        string             `yaml:"name" json:"name"`
	Matcher     string             `yaml:"matcher" json:"matcher"`
	Specificity MatcherSpecificity `yaml:"specificity" json:"specificity"`
	Guard       string             `yaml:"guard,omitempty" json:"guard,omitempty"`
	Severity    Severity           `yaml:"severity" json:"severity"`
	LegalBasis  []string           `yaml:"legal_basis,omitempty" json:"legal_basis,omitempty"`
	Rationale   string             `yaml:"rationale,omitempty" json:"rationale,omitempty"`
	Rewrite     string             `yaml:"rewrite,omitempty" json:"rewrite,omitempty"`
}

// GoldenStructure is a canonical pre-vetted clause shape. Clauses
// structurally close to one (similarity at or above the configured
// threshold) receive a SAFE finding.
type GoldenStructure struct {
	ID         string   `yaml:"id" json:"id"`
	Domain     Domain   `yaml:"domain" json:"domain"`
	Name       string   `yaml:"name" json:"name"`
	Template   string   `yaml:"template" json:"template"`
	LegalBasis []string `yaml:"legal_basis,omitempty" json:"legal_basis,omitempty"`
}
