// Package logic translates clause text into propositions over a fixed
// predicate vocabulary. Extraction is deterministic and rule-based, not a
// semantic parse: unextractable fragments are dropped, and the coverage
// ratio tells the verifier how much of the clause the propositions explain.
package logic

import (
	"regexp"
	"sort"

	"github.com/clauseguard/clauseguard/internal/model"
)

// extractionRule maps a clause-role marker to one proposition.
type extractionRule struct {
	re       *regexp.Regexp
	pred     model.Predicate
	args     []string
	polarity bool
}

// Action rules keyed to the statutory axiom vocabulary. Order matters only
// for span bookkeeping; the proposition set is order-insensitive for
// satisfiability.
var actionRules = []extractionRule{
	{regexp.MustCompile(`(一切|いかなる|全て|すべて).{0,10}(責任|賠償|補償).{0,12}(負わない|負いません|免除|免責)`),
		model.PredObligation, []string{"liability-waive-all"}, true},
	{regexp.MustCompile(`(退職|辞職).{0,15}(違約金|賠償|罰金)`),
		model.PredObligation, []string{"resignation-penalty"}, true},
	{regexp.MustCompile(`(時間外|残業|休日労働).{0,12}(手当|割増|賃金).{0,10}(支払わない|なし|含む|込み)`),
		model.PredObligation, []string{"overtime-unpaid"}, true},
	{regexp.MustCompile(`(個人情報|利用者情報).{0,20}(第三者|外部).{0,10}(提供|共有|開示).{0,10}(できる|する)`),
		model.PredRight, []string{"share-personal-data", "unconditional"}, true},
	{regexp.MustCompile(`(サービス|システム).{0,20}(いつでも|事前.{0,5}なく|通知.{0,5}なく|予告.{0,5}なく).{0,10}(停止|中止|終了)`),
		model.PredRight, []string{"suspend-service", "unconditional"}, true},
	{regexp.MustCompile(`(敷金|保証金).{0,12}(返還しない|返還を要しない)`),
		model.PredObligation, []string{"deposit-no-refund"}, true},
	{regexp.MustCompile(`(契約不適合|瑕疵).{0,6}責任|責任を負う`),
		model.PredObligation, []string{"liability"}, true},
	{regexp.MustCompile(`(\d+\s*日前.{0,10}通知|書面により通知|通知することにより.{0,10}(解除|解約)|催告した上)`),
		model.PredObligation, []string{"termination-notice"}, true},
}

// Termination-right markers; the mode argument depends on the surrounding
// wording, so this pair is handled outside the plain rule table.
var (
	terminateRight  = regexp.MustCompile(`解除(する)?(ことができる|できる)|(?i)may\s+terminate`)
	terminateUncond = regexp.MustCompile(`(いつでも|何らの通知|催告.{0,4}なく|無催告|(?i:at any time))`)
)

// Generic modal markers for obligations and rights outside the action
// vocabulary; they feed coverage and party reasoning.
var modalRules = []extractionRule{
	{regexp.MustCompile(`してはならない|(?i)shall\s+not\b`), model.PredObligation, []string{"refrain"}, true},
	{regexp.MustCompile(`しなければならない|義務を負う|(?i)\bshall\b`), model.PredObligation, []string{"duty"}, true},
	{regexp.MustCompile(`することができる|(?i)\bmay\b`), model.PredRight, []string{"act", "conditional"}, true},
}

// Conditional connectives with a locally classifiable trigger.
var conditionRules = []extractionRule{
	{regexp.MustCompile(`(違反|不履行).{0,8}(場合|とき)`), model.PredCondition, []string{"breach"}, true},
	{regexp.MustCompile(`(破産|民事再生|会社更生|特別清算).{0,12}(場合|とき)`), model.PredCondition, []string{"insolvency"}, true},
	{regexp.MustCompile(`通知.{0,8}(場合|とき)|(?i)upon\s+notice`), model.PredCondition, []string{"notice"}, true},
	{regexp.MustCompile(`の場合|ときは|(?i)\bif\b|(?i)in the event`), model.PredCondition, []string{"generic"}, true},
}

var partyRule = regexp.MustCompile(`[甲乙]|(?i)party\s+[ab]`)

// Translator converts clauses to proposition sets.
type Translator struct{}

// NewTranslator creates a translator.
func NewTranslator() *Translator { return &Translator{} }

// Translate extracts the proposition set for one clause. Raw findings feed
// negative evidence: a NO_TIME_LIMIT finding asserts the absence of a
// temporal bound so the axioms can reason about it. Extraction is lossy by
// design; Coverage reports how much of the text contributed.
func (t *Translator) Translate(clause model.Clause, findings []model.Finding) model.Translation {
	var props []model.Proposition
	var covered [][2]int

	add := func(pred model.Predicate, args []string, polarity bool, span [2]int) {
		source := ""
		if span[1] > span[0] && span[1] <= len(clause.Text) {
			source = clause.Text[span[0]:span[1]]
			covered = append(covered, span)
		}
		props = append(props, model.Proposition{
			Predicate: pred,
			Arguments: args,
			Polarity:  polarity,
			Span:      span,
			Source:    source,
		})
	}

	text := clause.Text

	for _, r := range actionRules {
		if loc := r.re.FindStringIndex(text); loc != nil {
			add(r.pred, r.args, r.polarity, [2]int{loc[0], loc[1]})
		}
	}

	if loc := terminateRight.FindStringIndex(text); loc != nil {
		mode := "conditional"
		if terminateUncond.MatchString(text) {
			mode = "unconditional"
		}
		add(model.PredRight, []string{"terminate", mode}, true, [2]int{loc[0], loc[1]})
	}

	for _, r := range modalRules {
		if loc := r.re.FindStringIndex(text); loc != nil {
			add(r.pred, r.args, r.polarity, [2]int{loc[0], loc[1]})
		}
	}

	for _, r := range conditionRules {
		if loc := r.re.FindStringIndex(text); loc != nil {
			add(r.pred, r.args, r.polarity, [2]int{loc[0], loc[1]})
			break // the most specific condition classification wins
		}
	}

	for _, b := range TemporalBounds(text) {
		add(model.PredTemporalBound, []string{"duration"}, true, [2]int{b.Start, b.End})
		break // one bound atom per clause; extra spans add nothing
	}

	for _, loc := range partyRule.FindAllStringIndex(text, -1) {
		name := normalizeParty(text[loc[0]:loc[1]])
		if !hasParty(props, name) {
			add(model.PredParty, []string{name}, true, [2]int{loc[0], loc[1]})
		}
	}

	// Negative evidence from the lawyer-thinking stage: a flagged missing
	// time limit becomes an asserted absence the axioms can contradict.
	if !hasPredicate(props, model.PredTemporalBound) {
		for _, f := range findings {
			if f.DetectorID == model.DetectorNoTimeLimit && f.ClauseID == clause.ID {
				add(model.PredTemporalBound, []string{"duration"}, false, [2]int{0, 0})
				break
			}
		}
	}

	// Insertion order follows textual order of the source spans; the solver
	// ignores it but core minimization uses it for tie-breaks.
	sort.SliceStable(props, func(i, j int) bool { return props[i].Span[0] < props[j].Span[0] })

	return model.Translation{
		ClauseID:     clause.ID,
		Propositions: props,
		Coverage:     coverageRatio(covered, len(text)),
	}
}

func normalizeParty(m string) string {
	switch m {
	case "甲":
		return "kou"
	case "乙":
		return "otsu"
	default:
		return "party"
	}
}

func hasParty(props []model.Proposition, name string) bool {
	for _, p := range props {
		if p.Predicate == model.PredParty && len(p.Arguments) == 1 && p.Arguments[0] == name {
			return true
		}
	}
	return false
}

func hasPredicate(props []model.Proposition, pred model.Predicate) bool {
	for _, p := range props {
		if p.Predicate == pred {
			return true
		}
	}
	return false
}

// coverageRatio merges the covered spans and returns covered bytes over
// total bytes.
func coverageRatio(spans [][2]int, total int) float64 {
	if total == 0 || len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	covered := 0
	curStart, curEnd := spans[0][0], spans[0][1]
	for _, s := range spans[1:] {
		if s[0] > curEnd {
			covered += curEnd - curStart
			curStart, curEnd = s[0], s[1]
			continue
		}
		if s[1] > curEnd {
			curEnd = s[1]
		}
	}
	covered += curEnd - curStart
	return float64(covered) / float64(total)
}
