package lawyer

import (
	"fmt"
	"regexp"

	"github.com/clauseguard/clauseguard/internal/logic"
	"github.com/clauseguard/clauseguard/internal/model"
)

// Effect tags whose clauses need a temporal bound, with the risk of leaving
// one out. Liability and warranty without a bound are the classic lawyer
// finding; confidentiality and noncompete matter less but still age badly.
var timeSensitiveTags = map[string]model.Severity{
	EffectLiability:        model.SeverityHigh,
	EffectWarranty:         model.SeverityHigh,
	EffectTerminationRight: model.SeverityMedium,
	EffectConfidentiality:  model.SeverityMedium,
	EffectNonCompete:       model.SeverityMedium,
	EffectDamages:          model.SeverityLow,
}

// Exceptions where an unbounded duty is legally ordinary: intent or gross
// negligence, personal injury, and durations fixed by statute.
var timeLimitExceptions = []*regexp.Regexp{
	regexp.MustCompile(`故意又は重(大な)?過失`),
	regexp.MustCompile(`生命.{0,6}身体.{0,6}(損害|傷害)`),
	regexp.MustCompile(`法令.{0,6}(定める|規定)`),
}

// DetectMissingTimeLimit flags NO_TIME_LIMIT when a time-sensitive clause
// has no derivable temporal bound. An explicit "unlimited" statement is
// still a missing bound; the statutory exceptions are not.
func DetectMissingTimeLimit(clause model.Clause) []model.Finding {
	var findings []model.Finding

	worst := model.SeveritySafe
	var hitTag string
	for _, tag := range clause.EffectTags {
		sev, ok := timeSensitiveTags[tag]
		if !ok {
			continue
		}
		if sev.Rank() > worst.Rank() {
			worst = sev
			hitTag = tag
		}
	}
	if hitTag == "" {
		return nil
	}
	for _, re := range timeLimitExceptions {
		if re.MatchString(clause.Text) {
			return nil
		}
	}
	if len(logic.TemporalBounds(clause.Text)) > 0 {
		return nil
	}

	rationale := fmt.Sprintf("clause carries effect %q but no temporal bound is derivable from its text", hitTag)
	if logic.ExplicitlyUnbounded(clause.Text) {
		rationale = fmt.Sprintf("clause carries effect %q with an explicitly unlimited duration", hitTag)
	}
	findings = append(findings, model.Finding{
		ClauseID:   clause.ID,
		DetectorID: model.DetectorNoTimeLimit,
		Kind:       model.KindNG,
		Severity:   worst,
		Confidence: model.SpecificityStructural.Confidence(),
		Matched:    hitTag,
		Rationale:  rationale,
	})
	return findings
}
