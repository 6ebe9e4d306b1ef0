package lawyer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Unconditional exercise of a right: no notice, no cure period.
var unconditionalMarker = regexp.MustCompile(`(いつでも|何らの通知|催告.{0,4}なく|無催告|(?i:at any time))`)

// Conditioned exercise: notice periods, written form, cure demands.
var conditionedMarker = regexp.MustCompile(`(\d+\s*日前|書面により通知|催告した上|通知することにより|(?i:days.{0,8}notice))`)

// edgeKind labels a coherence-graph edge.
type edgeKind string

const (
	edgeConflict    edgeKind = "conflict"
	edgeDuplication edgeKind = "duplication"
)

// edge is one labeled relation between two clauses sharing an effect tag.
type edge struct {
	a, b string
	kind edgeKind
	tag  string
	sim  float64
}

// CoherenceChecker builds a graph over clauses keyed by effect tags and
// flags contradictory or redundantly duplicated effects. Conflict detection
// is symmetric and closed transitively: if A conflicts with B and B with C,
// all three are flagged.
type CoherenceChecker struct {
	// SimilarityThreshold is the minimum weighted effect/trigger overlap for
	// a duplication edge.
	SimilarityThreshold float64
}

// Check analyzes the full clause set of one document.
func (c *CoherenceChecker) Check(clauses []model.Clause) []model.Finding {
	threshold := c.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.3
	}

	type info struct {
		clause   model.Clause
		tags     map[string]bool
		triggers map[string]bool
		uncond   bool
		cond     bool
	}
	infos := make([]info, 0, len(clauses))
	for _, cl := range clauses {
		tags := map[string]bool{}
		for _, t := range cl.EffectTags {
			tags[t] = true
		}
		trig := map[string]bool{}
		for _, t := range ExtractTriggers(cl.Text) {
			trig[t] = true
		}
		infos = append(infos, info{
			clause:   cl,
			tags:     tags,
			triggers: trig,
			uncond:   unconditionalMarker.MatchString(cl.Text),
			cond:     conditionedMarker.MatchString(cl.Text),
		})
	}

	var edges []edge
	for i := 0; i < len(infos); i++ {
		for j := i + 1; j < len(infos); j++ {
			a, b := infos[i], infos[j]
			shared := sharedTags(a.tags, b.tags)
			if len(shared) == 0 {
				continue
			}
			// Contradiction: the same effect granted unconditionally in one
			// clause and conditioned in another.
			if (a.uncond && b.cond) || (a.cond && b.uncond) {
				edges = append(edges, edge{a: a.clause.ID, b: b.clause.ID, kind: edgeConflict, tag: shared[0]})
				continue
			}
			sim := weightedSimilarity(a.tags, b.tags, a.triggers, b.triggers)
			if sim >= threshold {
				edges = append(edges, edge{a: a.clause.ID, b: b.clause.ID, kind: edgeDuplication, tag: shared[0], sim: sim})
			}
		}
	}

	return c.findingsFromEdges(edges)
}

// findingsFromEdges flags every clause in a conflict component, plus both
// ends of each duplication edge.
func (c *CoherenceChecker) findingsFromEdges(edges []edge) []model.Finding {
	// Transitive closure over conflict edges via union-find.
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] == "" || parent[x] == x {
			parent[x] = x
			return x
		}
		root := find(parent[x])
		parent[x] = root
		return root
	}
	union := func(a, b string) { parent[find(a)] = find(b) }

	conflictTag := map[string]string{}
	for _, e := range edges {
		if e.kind == edgeConflict {
			union(e.a, e.b)
			conflictTag[find(e.a)] = e.tag
		}
	}

	components := map[string][]string{}
	for _, e := range edges {
		if e.kind != edgeConflict {
			continue
		}
		for _, id := range []string{e.a, e.b} {
			root := find(id)
			if !contains(components[root], id) {
				components[root] = append(components[root], id)
			}
		}
	}

	var findings []model.Finding
	for root, members := range components {
		sort.Strings(members)
		tag := conflictTag[root]
		for _, id := range members {
			findings = append(findings, model.Finding{
				ClauseID:   id,
				DetectorID: model.DetectorCoherenceCheck,
				Kind:       model.KindNG,
				Severity:   model.SeverityHigh,
				Confidence: model.SpecificityStructural.Confidence(),
				Matched:    tag,
				Rationale: fmt.Sprintf("effect %q is assigned contradictory conditions across clauses %s",
					tag, strings.Join(members, ", ")),
			})
		}
	}

	for _, e := range edges {
		if e.kind != edgeDuplication {
			continue
		}
		for _, id := range []string{e.a, e.b} {
			findings = append(findings, model.Finding{
				ClauseID:   id,
				DetectorID: model.DetectorCoherenceCheck,
				Kind:       model.KindNG,
				Severity:   model.SeverityMedium,
				Confidence: e.sim,
				Matched:    e.tag,
				Rationale: fmt.Sprintf("effect %q duplicated across clauses %s and %s (similarity %.2f); override precedence is ambiguous",
					e.tag, e.a, e.b, e.sim),
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool { return findings[i].ClauseID < findings[j].ClauseID })
	return findings
}

// weightedSimilarity is the duplication score: Jaccard overlap of effect
// tags weighted 0.6 plus Jaccard overlap of trigger conditions weighted 0.4.
func weightedSimilarity(tagsA, tagsB, trigA, trigB map[string]bool) float64 {
	return 0.6*jaccard(tagsA, tagsB) + 0.4*jaccard(trigA, trigB)
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter, uni := 0, len(b)
	for k := range a {
		if b[k] {
			inter++
		} else {
			uni++
		}
	}
	return float64(inter) / float64(uni)
}

func sharedTags(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
