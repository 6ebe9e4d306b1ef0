package lawyer

import (
	"testing"

	"github.com/clauseguard/clauseguard/internal/model"
)

func tagged(id, text string) model.Clause {
	return model.Clause{ID: id, Text: text, EffectTags: ExtractEffectTags(text)}
}

func byClause(findings []model.Finding) map[string][]model.Finding {
	out := map[string][]model.Finding{}
	for _, f := range findings {
		out[f.ClauseID] = append(out[f.ClauseID], f)
	}
	return out
}

func TestCoherence_ConflictingTerminationConditions(t *testing.T) {
	checker := &CoherenceChecker{SimilarityThreshold: 0.3}
	clauses := []model.Clause{
		tagged("c001", "甲は、いつでも本契約を解除することができる。"),
		tagged("c002", "甲は、30日前までに書面により通知することにより本契約を解除することができる。"),
	}

	findings := checker.Check(clauses)
	perClause := byClause(findings)

	for _, id := range []string{"c001", "c002"} {
		fs := perClause[id]
		if len(fs) == 0 {
			t.Errorf("Expected a coherence finding on %s", id)
			continue
		}
		f := fs[0]
		if f.DetectorID != model.DetectorCoherenceCheck {
			t.Errorf("Expected COHERENCE_CHECK detector, got %s", f.DetectorID)
		}
		if f.Severity != model.SeverityHigh {
			t.Errorf("Expected HIGH for a contradiction, got %s", f.Severity)
		}
	}
}

func TestCoherence_TransitiveConflictClosure(t *testing.T) {
	checker := &CoherenceChecker{SimilarityThreshold: 0.3}
	// c001 is unconditional, c002 and c003 are conditioned. Conflict edges
	// c001-c002 and c001-c003 pull all three into one flagged component.
	clauses := []model.Clause{
		tagged("c001", "乙は、何らの通知なく本契約を解除することができる。"),
		tagged("c002", "乙は、14日前までに書面により通知した上で本契約を解除することができる。"),
		tagged("c003", "乙は、甲に催告した上で本契約を解除することができる。"),
	}

	findings := checker.Check(clauses)
	perClause := byClause(findings)

	for _, id := range []string{"c001", "c002", "c003"} {
		found := false
		for _, f := range perClause[id] {
			if f.Severity == model.SeverityHigh {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %s to be flagged via transitive closure", id)
		}
	}
}

func TestCoherence_DuplicatedEffect(t *testing.T) {
	checker := &CoherenceChecker{SimilarityThreshold: 0.3}
	clauses := []model.Clause{
		tagged("c001", "乙が本契約に違反した場合、甲は損害賠償を請求することができる。"),
		tagged("c002", "乙の違反があったときは、甲は損害の賠償を請求できるものとする。"),
	}

	findings := checker.Check(clauses)
	perClause := byClause(findings)

	for _, id := range []string{"c001", "c002"} {
		found := false
		for _, f := range perClause[id] {
			if f.Severity == model.SeverityMedium {
				found = true
				if f.Confidence < 0.3 {
					t.Errorf("Expected confidence at or above the threshold, got %f", f.Confidence)
				}
			}
		}
		if !found {
			t.Errorf("Expected a duplication finding on %s", id)
		}
	}
}

func TestCoherence_UnrelatedClausesAreQuiet(t *testing.T) {
	checker := &CoherenceChecker{SimilarityThreshold: 0.3}
	clauses := []model.Clause{
		tagged("c001", "乙は秘密情報を第三者に開示してはならない。"),
		tagged("c002", "甲は毎月末日までに委託料を支払う。"),
	}

	findings := checker.Check(clauses)
	if len(findings) != 0 {
		t.Errorf("Expected no findings for unrelated clauses, got %d", len(findings))
	}
}

func TestCoherence_SortedByClauseID(t *testing.T) {
	checker := &CoherenceChecker{SimilarityThreshold: 0.3}
	clauses := []model.Clause{
		tagged("c003", "甲は、いつでも本契約を解除することができる。"),
		tagged("c001", "甲は、30日前までに書面により通知することにより本契約を解除することができる。"),
	}

	findings := checker.Check(clauses)
	for i := 1; i < len(findings); i++ {
		if findings[i-1].ClauseID > findings[i].ClauseID {
			t.Errorf("Expected findings sorted by clause ID, got %s before %s",
				findings[i-1].ClauseID, findings[i].ClauseID)
		}
	}
}
