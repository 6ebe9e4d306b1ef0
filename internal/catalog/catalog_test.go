package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clauseguard/clauseguard/internal/model"
)

func TestLoad_GenericBaseline(t *testing.T) {
	cat, err := Load(model.DomainGeneric)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cat.Patterns) == 0 {
		t.Fatal("Expected generic patterns to load")
	}
	if _, ok := cat.Pattern("GEN-NG-001"); !ok {
		t.Error("Expected GEN-NG-001 in the generic pack")
	}
	if cat.Matcher("GEN-NG-001") == nil {
		t.Error("Expected a compiled matcher for GEN-NG-001")
	}
	if len(cat.Goldens) == 0 {
		t.Error("Expected golden structures in the generic pack")
	}
}

func TestLoad_DomainStacksOnGeneric(t *testing.T) {
	cat, err := Load(model.DomainLabor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, ok := cat.Pattern("GEN-NG-001"); !ok {
		t.Error("Expected the generic baseline to apply to the labor domain")
	}

	foundLabor := false
	for _, p := range cat.Patterns {
		if strings.HasPrefix(p.ID, "LAB-") {
			foundLabor = true
			break
		}
	}
	if !foundLabor {
		t.Error("Expected labor-specific patterns on top of the baseline")
	}
}

func TestLoad_AxiomsFilteredByDomain(t *testing.T) {
	labor, err := Load(model.DomainLabor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	hasGeneric, hasLabor, hasOther := false, false, false
	for _, ax := range labor.Axioms {
		switch ax.Domain {
		case model.DomainGeneric:
			hasGeneric = true
		case model.DomainLabor:
			hasLabor = true
		default:
			hasOther = true
		}
	}
	if !hasGeneric {
		t.Error("Expected generic axioms in the labor catalog")
	}
	if !hasLabor {
		t.Error("Expected labor axioms in the labor catalog")
	}
	if hasOther {
		t.Error("Expected no axioms from unrelated domains")
	}
}

func TestLoad_UnknownDomain(t *testing.T) {
	if _, err := Load(model.Domain("maritime")); err == nil {
		t.Error("Expected an error for an unknown domain")
	}
}

func TestCatalog_FingerprintStable(t *testing.T) {
	a, err := Load(model.DomainITSaaS)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := Load(model.DomainITSaaS)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Expected identical fingerprints for identical catalogs")
	}

	generic, err := Load(model.DomainGeneric)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if generic.Fingerprint() == a.Fingerprint() {
		t.Error("Expected different fingerprints for different domains")
	}
}

func TestCatalog_LoadFile(t *testing.T) {
	pack := `domain: generic
patterns:
  - id: EXT-NG-001
    kind: NG
    matcher: '自動更新'
    severity: MEDIUM
    rationale: external test pattern
`
	path := filepath.Join(t.TempDir(), "ext.yaml")
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(model.DomainGeneric)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	before := len(cat.Patterns)
	fpBefore := cat.Fingerprint()

	if err := cat.LoadFile(path); err != nil {
		t.Fatalf("Expected external pack to load, got %v", err)
	}
	if len(cat.Patterns) != before+1 {
		t.Errorf("Expected %d patterns after stacking, got %d", before+1, len(cat.Patterns))
	}
	if _, ok := cat.Pattern("EXT-NG-001"); !ok {
		t.Error("Expected EXT-NG-001 after loading the external pack")
	}
	if cat.Fingerprint() == fpBefore {
		t.Error("Expected the fingerprint to change when the catalog changes")
	}
}

func TestCatalog_LoadFileRejectsBadSchema(t *testing.T) {
	cases := map[string]string{
		"missing severity": `domain: generic
patterns:
  - id: BAD-001
    kind: NG
    matcher: 'x'
`,
		"bad kind": `domain: generic
patterns:
  - id: BAD-002
    kind: MAYBE
    matcher: 'x'
    severity: HIGH
`,
		"unknown field": `domain: generic
patterns:
  - id: BAD-003
    kind: NG
    matcher: 'x'
    severity: HIGH
    priority: 3
`,
	}

	for name, pack := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
			t.Fatal(err)
		}
		cat, err := Load(model.DomainGeneric)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		before := len(cat.Patterns)
		if err := cat.LoadFile(path); err == nil {
			t.Errorf("Case %q: expected schema validation to reject the pack", name)
		}
		if len(cat.Patterns) != before {
			t.Errorf("Case %q: expected a rejected pack to leave the catalog untouched", name)
		}
	}
}

func TestCatalog_LoadFileRejectsBadMatcher(t *testing.T) {
	pack := `domain: generic
patterns:
  - id: BAD-RE-001
    kind: NG
    matcher: '([unclosed'
    severity: HIGH
`
	path := filepath.Join(t.TempDir(), "badre.yaml")
	if err := os.WriteFile(path, []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := Load(model.DomainGeneric)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := cat.LoadFile(path); err == nil {
		t.Error("Expected an error for an uncompilable matcher")
	}
}

func TestLoad_AllKnownDomains(t *testing.T) {
	for _, d := range model.KnownDomains() {
		if _, err := Load(d); err != nil {
			t.Errorf("Expected domain %s to load, got %v", d, err)
		}
	}
}
