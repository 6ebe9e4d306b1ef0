package lawyer

import (
	"fmt"
	"regexp"

	"github.com/clauseguard/clauseguard/internal/model"
)

// Conditional markers that demand an explicit consequence nearby.
var conditionalMarkers = []*regexp.Regexp{
	regexp.MustCompile(`の場合`),
	regexp.MustCompile(`ときは`),
	regexp.MustCompile(`必要に応じて`),
}

// Subjective judgment: one party decides what counts, at its discretion.
var subjectiveJudgment = regexp.MustCompile(`[甲乙]が(必要|適当)と(認めた|判断した)(場合|とき)`)

// Consequence markers: an action or outcome following a condition.
var consequenceMarker = regexp.MustCompile(`(する|負う|できる|請求|支払|解除|通知|協議|従う|よる)`)

// Actions whose deciding party must be named.
var decidingActions = regexp.MustCompile(`(検査|確認|承認|判断|決定)(する|を行う|される)`)

// A named party directly before the action satisfies the subject check.
var namedSubject = regexp.MustCompile(`[甲乙](は|が|の)`)

// Vague standards with no defined value. Each entry is checked
// independently; a clause can accumulate several ambiguity reasons.
var vagueStandards = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`適切に`), "「適切」の基準が未定義"},
	{regexp.MustCompile(`速やかに`), "「速やか」の期限が未定義"},
	{regexp.MustCompile(`合理的(な|に)`), "「合理的」の基準が未定義"},
	{regexp.MustCompile(`相当(の|な|期間)`), "「相当」の基準が未定義"},
	{regexp.MustCompile(`必要な(措置|対応|手続)`), "「必要」の範囲が未定義"},
	{regexp.MustCompile(`適当(な|と認める)`), "「適当」の基準が未定義"},
	{regexp.MustCompile(`適宜`), "「適宜」の基準が未定義"},
	{regexp.MustCompile(`遅滞なく`), "具体的期限が未定義"},
	{regexp.MustCompile(`直ちに`), "具体的期限が未定義"},
	{regexp.MustCompile(`正当な理由`), "「正当な理由」の定義が未定義"},
	{regexp.MustCompile(`(?i)reasonable (efforts?|time|period)`), "no defined standard for \"reasonable\""},
	{regexp.MustCompile(`(?i)as (appropriate|applicable|necessary)`), "no defined standard for the referenced criterion"},
}

// DetectAmbiguity flags a clause AMBIGUOUS_CLAUSE for each independent
// reason: a condition without a stated consequence, a judgment-dependent
// term without a deciding party, or a referenced standard without a defined
// value.
func DetectAmbiguity(clause model.Clause) []model.Finding {
	var findings []model.Finding
	text := clause.Text
	runes := []rune(text)

	emit := func(severity model.Severity, trigger, reason string) {
		findings = append(findings, model.Finding{
			ClauseID:   clause.ID,
			DetectorID: model.DetectorAmbiguousClause,
			Kind:       model.KindNG,
			Severity:   severity,
			Confidence: model.SpecificityHeuristic.Confidence(),
			Matched:    trigger,
			Rationale:  reason,
		})
	}

	// Condition without consequence: nothing actionable follows the marker.
	for _, re := range conditionalMarkers {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			tail := trailing(runes, loc[1], 25)
			if !consequenceMarker.MatchString(tail) {
				emit(model.SeverityMedium, text[loc[0]:loc[1]],
					fmt.Sprintf("「%s」に対する帰結・対応が明示されていない", text[loc[0]:loc[1]]))
			}
		}
	}
	if m := subjectiveJudgment.FindString(text); m != "" {
		emit(model.SeverityMedium, m, "一方当事者の主観的判断に委ねられており客観的基準がない")
	}

	// Judgment-dependent action with no deciding party nearby.
	for _, loc := range decidingActions.FindAllStringIndex(text, -1) {
		head := leading(runes, loc[0], 20)
		if !namedSubject.MatchString(head) {
			emit(model.SeverityHigh, text[loc[0]:loc[1]],
				fmt.Sprintf("「%s」の判断主体（甲/乙/第三者）が明確でない", text[loc[0]:loc[1]]))
		}
	}

	// Referenced standard with no defined value.
	for _, v := range vagueStandards {
		if m := v.re.FindString(text); m != "" {
			emit(model.SeverityMedium, m, v.desc)
		}
	}
	return findings
}

// trailing returns up to n runes of text after byte offset start.
func trailing(runes []rune, byteStart, n int) string {
	idx := runeIndex(runes, byteStart)
	end := idx + n
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[idx:end])
}

// leading returns up to n runes of text before byte offset end.
func leading(runes []rune, byteEnd, n int) string {
	idx := runeIndex(runes, byteEnd)
	start := idx - n
	if start < 0 {
		start = 0
	}
	return string(runes[start:idx])
}

// runeIndex converts a byte offset into a rune index.
func runeIndex(runes []rune, byteOff int) int {
	b := 0
	for i, r := range runes {
		if b >= byteOff {
			return i
		}
		b += len(string(r))
	}
	return len(runes)
}
