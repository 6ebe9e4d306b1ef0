// Test program to demonstrate cross-clause conflict detection
// This shows contradiction and duplication edges being found and expanded
// through their transitive closure
package main

import (
	"fmt"
	"strings"

	"github.com/clauseguard/clauseguard/internal/lawyer"
	"github.com/clauseguard/clauseguard/internal/model"
	"github.com/clauseguard/clauseguard/internal/segment"
)

func main() {
	fmt.Println("=== Clause Conflict Detection Test ===")
	fmt.Println()

	// A contract with a known contradiction: clause 5 grants unconditional
	// termination, clause 12 requires 30 days written notice for the same
	// termination right.
	text := `第5条 甲は、いつでも何らの通知なくして本契約を解除することができる。

第8条 乙は、本契約に関して知り得た秘密情報を第三者に開示してはならない。

第12条 甲は、30日前までに書面により通知することにより、本契約を解除することができる。

第13条 甲は、30日前までに書面により乙に通知した場合に限り、本契約を解除することができる。`

	seg := segment.New(4000)
	clauses, err := seg.Segment(text)
	if err != nil {
		fmt.Printf("segmentation error: %v\n", err)
		return
	}

	for i := range clauses {
		clauses[i].EffectTags = lawyer.ExtractEffectTags(clauses[i].Text)
	}

	for _, c := range clauses {
		fmt.Printf("%s (%s)\n", c.ID, c.Label)
		fmt.Printf("  tags: %v\n", c.EffectTags)
	}
	fmt.Println(strings.Repeat("-", 60))

	checker := &lawyer.CoherenceChecker{SimilarityThreshold: 0.3}
	findings := checker.Check(clauses)

	if len(findings) == 0 {
		fmt.Println("No cross-clause conflicts detected")
		return
	}

	fmt.Printf("COHERENCE FINDINGS: %d\n", len(findings))
	for _, f := range findings {
		fmt.Printf("  [%s] %s: %s\n", f.Severity, f.ClauseID, f.Rationale)
	}

	flagged := map[string]bool{}
	for _, f := range findings {
		if f.Severity == model.SeverityHigh {
			flagged[f.ClauseID] = true
		}
	}
	fmt.Printf("\nClauses in conflict closure: %d\n", len(flagged))
}
