package model

// Clause is a single addressable unit of contract text produced by the
// segmenter. Immutable once created; downstream stages reference it by ID.
type Clause struct {
	ID          string   `json:"id"`                     // Stable ID, monotonic within a document (e.g., "c001")
	Label       string   `json:"label,omitempty"`        // Structural label from the source (e.g., "第15条2項", "Article 3")
	Text        string   `json:"text"`                   // Clause text as segmented
	StartOffset int      `json:"start_offset"`           // Byte offset of the clause start in the source text
	EndOffset   int      `json:"end_offset"`             // Byte offset one past the clause end
	EffectTags  []string `json:"effect_tags,omitempty"`  // Normalized legal-effect labels (e.g., "termination-right")
}

// Domain selects which pattern catalog and axiom set apply to a document.
type Domain string

const (
	DomainGeneric    Domain = "generic"
	DomainLabor      Domain = "labor"
	DomainRealEstate Domain = "realestate"
	DomainITSaaS     Domain = "it_saas"
)

// KnownDomains lists every domain with a built-in catalog.
func KnownDomains() []Domain {
	return []Domain{DomainGeneric, DomainLabor, DomainRealEstate, DomainITSaaS}
}

// Valid reports whether d names a known domain.
func (d Domain) Valid() bool {
	for _, k := range KnownDomains() {
		if d == k {
			return true
		}
	}
	return false
}

// Severity ranks how dangerous a finding or verdict is.
type Severity string

const (
	SeveritySafe     Severity = "SAFE"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Rank returns the ordering of a severity; higher is worse. Unknown values
// rank above CRITICAL so a corrupted severity is never treated as safe.
func (s Severity) Rank() int {
	switch s {
	case SeveritySafe:
		return 0
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 5
	}
}

// MaxSeverity returns the worse of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
