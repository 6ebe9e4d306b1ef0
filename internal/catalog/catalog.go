// Package catalog loads the declarative pattern, golden-structure, and axiom
// catalogs. Built-in domain packs are embedded; files on disk can extend or
// replace them. New domains are additive data, not new code paths.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/clauseguard/clauseguard/internal/model"
)

//go:embed defaults/*.yaml catalog.schema.json
var defaults embed.FS

// Catalog is the loaded, validated pattern set for one domain plus the
// generic baseline. Static once loaded; never mutated during a run.
type Catalog struct {
	Domain   model.Domain
	Patterns []model.Pattern
	Goldens  []model.GoldenStructure
	Axioms   []model.Axiom

	compiled map[string]*regexp.Regexp
}

// domainFile is the YAML shape of one domain pack.
type domainFile struct {
	Domain   model.Domain            `yaml:"domain"`
	Patterns []model.Pattern         `yaml:"patterns"`
	Goldens  []model.GoldenStructure `yaml:"golden_structures"`
}

// axiomFile is the YAML shape of the statutory axiom set.
type axiomFile struct {
	Axioms []model.Axiom `yaml:"axioms"`
}

// Load builds the catalog for a domain from the embedded packs: the generic
// baseline always applies, the named domain pack stacks on top.
func Load(domain model.Domain) (*Catalog, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("unknown domain %q", domain)
	}
	c := &Catalog{Domain: domain, compiled: map[string]*regexp.Regexp{}}

	packs := []model.Domain{model.DomainGeneric}
	if domain != model.DomainGeneric {
		packs = append(packs, domain)
	}
	for _, d := range packs {
		data, err := defaults.ReadFile("defaults/" + string(d) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("embedded pack %s: %w", d, err)
		}
		if err := c.mergePack(data); err != nil {
			return nil, fmt.Errorf("pack %s: %w", d, err)
		}
	}

	axioms, err := loadAxioms()
	if err != nil {
		return nil, err
	}
	for _, ax := range axioms {
		if ax.Domain == model.DomainGeneric || ax.Domain == domain {
			c.Axioms = append(c.Axioms, ax)
		}
	}
	sort.Slice(c.Axioms, func(i, j int) bool { return c.Axioms[i].CitationID < c.Axioms[j].CitationID })
	return c, nil
}

// LoadFile stacks an external domain pack on top of an already loaded
// catalog. The file is schema-validated before any of it is applied.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pack: %w", err)
	}
	if err := c.mergePack(data); err != nil {
		return fmt.Errorf("pack %s: %w", path, err)
	}
	return nil
}

func (c *Catalog) mergePack(data []byte) error {
	if err := validatePack(data); err != nil {
		return err
	}
	var pack domainFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	for _, p := range pack.Patterns {
		re, err := regexp.Compile(p.Matcher)
		if err != nil {
			return fmt.Errorf("pattern %s: bad matcher: %w", p.ID, err)
		}
		c.compiled[p.ID] = re
		c.Patterns = append(c.Patterns, p)
	}
	c.Goldens = append(c.Goldens, pack.Goldens...)
	return nil
}

// Pattern returns the pattern with the given ID.
func (c *Catalog) Pattern(id string) (model.Pattern, bool) {
	for _, p := range c.Patterns {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pattern{}, false
}

// Matcher returns the compiled regexp for a pattern ID.
func (c *Catalog) Matcher(patternID string) *regexp.Regexp {
	return c.compiled[patternID]
}

// Fingerprint identifies the loaded catalog content for cache keys and
// idempotence checks.
func (c *Catalog) Fingerprint() string {
	var buf bytes.Buffer
	for _, p := range c.Patterns {
		fmt.Fprintf(&buf, "%s|%s|%s|%s\n", p.ID, p.Kind, p.Severity, p.Matcher)
	}
	for _, g := range c.Goldens {
		fmt.Fprintf(&buf, "%s|%s\n", g.ID, g.Template)
	}
	for _, a := range c.Axioms {
		fmt.Fprintf(&buf, "%s|%d\n", a.CitationID, len(a.Clauses))
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

func loadAxioms() ([]model.Axiom, error) {
	data, err := defaults.ReadFile("defaults/axioms.yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded axioms: %w", err)
	}
	var f axiomFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode axioms: %w", err)
	}
	return f.Axioms, nil
}

// validatePack checks a domain pack against the embedded JSON schema before
// it is decoded into typed structs.
func validatePack(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	sch, err := packSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

func packSchema() (*jsonschema.Schema, error) {
	raw, err := defaults.ReadFile("catalog.schema.json")
	if err != nil {
		return nil, fmt.Errorf("embedded schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", doc); err != nil {
		return nil, fmt.Errorf("schema resource: %w", err)
	}
	sch, err := compiler.Compile("catalog.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}
