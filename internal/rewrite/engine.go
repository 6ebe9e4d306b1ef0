// Package rewrite proposes replacement clause text when verification found
// a contradiction. Every proposal is justified by the unsat core that
// provoked it; without a core there is no proof the clause is broken, and
// no rewrite is offered.
package rewrite

import (
	"github.com/clauseguard/clauseguard/internal/model"
)

// template maps a signed atom key to corrective wording. The key uses the
// proposition Key with a "!" prefix for negative polarity, matching the
// solver's cache key scheme.
var templates = map[string]string{
	"!TEMPORAL_BOUND|duration": "ただし、本条に基づく請求は、甲が乙に対し目的物の引渡しから1年以内にその旨を通知した場合に限り行うことができる。",
	"OBLIGATION|liability-waive-all": "乙の損害賠償責任は、故意又は重大な過失による場合を除き、本契約に基づき甲が支払った対価の総額を上限とする。",
	"RIGHT|terminate|unconditional": "各当事者は、30日前までに書面により相手方に通知することにより、本契約を解除することができる。",
	"OBLIGATION|resignation-penalty": "乙は、法令の定めに従い退職することができ、甲は退職を理由とする違約金その他の金銭を請求しない。",
	"OBLIGATION|overtime-unpaid": "時間外労働に対しては、労働基準法第37条の定めに従い割増賃金を支払う。",
	"RIGHT|share-personal-data|unconditional": "甲は、本人の事前の同意を得た場合又は法令に基づく場合を除き、個人情報を第三者に提供しない。",
	"RIGHT|suspend-service|unconditional": "甲は、やむを得ない場合を除き、サービスの停止の7日前までに乙に通知する。",
	"OBLIGATION|deposit-no-refund": "甲は、本物件の明渡し後、未払賃料その他乙の債務を控除した敷金の残額を遅滞なく乙に返還する。",
}

// Engine turns unsat cores into concrete rewrite proposals.
type Engine struct{}

// NewEngine creates a rewrite engine.
func NewEngine() *Engine { return &Engine{} }

// Propose builds a rewrite for a clause whose verification came back
// UNSAT. The patterns argument carries matched catalog patterns so a
// pattern-supplied rewrite can serve when no template covers the core.
// Returns nil when the result is not UNSAT or no wording is available; a
// missing proposal is honest, not an error.
func (e *Engine) Propose(clause model.Clause, result model.VerificationResult, patterns []model.Pattern) *model.Rewrite {
	if result.Status != model.StatusUNSAT || len(result.UnsatCore) == 0 {
		return nil
	}

	for _, p := range result.UnsatCore {
		text, ok := templates[signedKey(p)]
		if !ok {
			continue
		}
		return &model.Rewrite{
			ClauseID:      clause.ID,
			OriginalSpan:  propSpan(clause, p),
			ProposedText:  text,
			Justification: append([]model.Proposition(nil), result.UnsatCore...),
		}
	}

	// No template matched; a matched catalog pattern may still carry
	// corrective wording for this clause.
	for _, pat := range patterns {
		if pat.Rewrite == "" {
			continue
		}
		return &model.Rewrite{
			ClauseID:      clause.ID,
			OriginalSpan:  [2]int{0, len(clause.Text)},
			ProposedText:  pat.Rewrite,
			Justification: append([]model.Proposition(nil), result.UnsatCore...),
		}
	}
	return nil
}

func signedKey(p model.Proposition) string {
	if p.Polarity {
		return p.Key()
	}
	return "!" + p.Key()
}

// propSpan returns the text range the proposal replaces. Propositions
// asserted from absence evidence have a zero span; those target the whole
// clause.
func propSpan(clause model.Clause, p model.Proposition) [2]int {
	if p.Span[1] > p.Span[0] && p.Span[1] <= len(clause.Text) {
		return p.Span
	}
	return [2]int{0, len(clause.Text)}
}
