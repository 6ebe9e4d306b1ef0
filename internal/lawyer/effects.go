// Package lawyer implements the lawyer-thinking decomposition: ambiguity
// detection, cross-clause coherence checking, and time-limit analysis.
package lawyer

import (
	"regexp"
	"sort"
)

// Effect tags are normalized labels for a clause's legal effect. They key
// the cross-clause coherence graph.
const (
	EffectTerminationRight = "termination-right"
	EffectDamages          = "damages"
	EffectCreditLoss       = "credit-loss"
	EffectObligation       = "obligation"
	EffectNotification     = "notification"
	EffectInspection       = "inspection"
	EffectPayment          = "payment"
	EffectLiability        = "liability"
	EffectLiabilityCap     = "liability-cap"
	EffectConfidentiality  = "confidentiality"
	EffectNonCompete       = "noncompete"
	EffectWarranty         = "warranty"
)

var effectPatterns = map[string][]*regexp.Regexp{
	EffectTerminationRight: {
		regexp.MustCompile(`解除(する|できる|することができる)`),
		regexp.MustCompile(`(直ちに|即時に).{0,10}解除`),
		regexp.MustCompile(`(?i)may\s+terminate`),
	},
	EffectDamages: {
		regexp.MustCompile(`損害(賠償|を賠償|の賠償)`),
		regexp.MustCompile(`賠償(請求|を請求|の請求)`),
	},
	EffectCreditLoss: {
		regexp.MustCompile(`信用.{0,6}(失|毀損|低下)`),
		regexp.MustCompile(`(社会的|経済的).{0,4}信用`),
	},
	EffectObligation: {
		regexp.MustCompile(`(しなければならない|義務を負う|ものとする)`),
		regexp.MustCompile(`(?i)\bshall\b`),
	},
	EffectNotification: {
		regexp.MustCompile(`通知(する|しなければ|を行う)`),
		regexp.MustCompile(`報告(する|しなければ)`),
	},
	EffectInspection: {
		regexp.MustCompile(`検査(する|を行う|を受ける)`),
	},
	EffectPayment: {
		regexp.MustCompile(`支払(う|い|われる)`),
		regexp.MustCompile(`(代金|報酬|対価).{0,6}(支払|払う)`),
	},
	EffectLiability: {
		regexp.MustCompile(`責任.{0,4}(負う|を負担|免れ)`),
		regexp.MustCompile(`(契約不適合|瑕疵).{0,4}責任`),
	},
	EffectLiabilityCap: {
		regexp.MustCompile(`(賠償|責任).{0,8}(上限|限度)`),
	},
	EffectConfidentiality: {
		regexp.MustCompile(`(秘密|機密)(保持|保護|情報)`),
	},
	EffectNonCompete: {
		regexp.MustCompile(`競業(避止|禁止)`),
	},
	EffectWarranty: {
		regexp.MustCompile(`保証(する|期間|責任)`),
	},
}

// Trigger conditions classify what activates a clause's effect; shared
// triggers feed the duplication similarity score.
var triggerPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(資産|信用|事業).{0,8}(重大な変更|変動)`), "economic-change"},
	{regexp.MustCompile(`(仮差押|差押|仮処分|競売)`), "legal-proceedings"},
	{regexp.MustCompile(`(破産|民事再生|会社更生|特別清算)`), "insolvency"},
	{regexp.MustCompile(`(公租公課|滞納処分)`), "tax-delinquency"},
	{regexp.MustCompile(`(取引停止|不渡り|支払停止)`), "financial-incident"},
	{regexp.MustCompile(`(許可|免許).{0,6}(失効|取消)`), "license-loss"},
	{regexp.MustCompile(`(解散|合併|分割|事業譲渡)`), "reorganization"},
	{regexp.MustCompile(`信用.{0,6}(失|毀損)`), "credit-loss"},
	{regexp.MustCompile(`(違反|不履行)`), "breach"},
	{regexp.MustCompile(`(遅延|遅滞)`), "delay"},
}

// ExtractEffectTags returns the sorted effect tags present in clause text.
func ExtractEffectTags(text string) []string {
	var tags []string
	for tag, res := range effectPatterns {
		for _, re := range res {
			if re.MatchString(text) {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// ExtractTriggers returns the sorted trigger-condition labels in clause text.
func ExtractTriggers(text string) []string {
	var out []string
	for _, t := range triggerPatterns {
		if t.re.MatchString(text) {
			out = append(out, t.label)
		}
	}
	sort.Strings(out)
	return out
}
