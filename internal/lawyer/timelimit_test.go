package lawyer

import (
	"strings"
	"testing"

	"github.com/clauseguard/clauseguard/internal/model"
)

func TestDetectMissingTimeLimit_UnboundedLiability(t *testing.T) {
	clause := tagged("c001", "乙は、納品物の契約不適合について責任を負うものとする。")

	findings := DetectMissingTimeLimit(clause)
	if len(findings) != 1 {
		t.Fatalf("Expected exactly one finding, got %d", len(findings))
	}
	f := findings[0]
	if f.DetectorID != model.DetectorNoTimeLimit {
		t.Errorf("Expected NO_TIME_LIMIT detector, got %s", f.DetectorID)
	}
	if f.Severity != model.SeverityHigh {
		t.Errorf("Expected HIGH for unbounded liability, got %s", f.Severity)
	}
	if f.Matched != EffectLiability {
		t.Errorf("Expected the liability effect tag, got %s", f.Matched)
	}
}

func TestDetectMissingTimeLimit_BoundedLiabilityIsFine(t *testing.T) {
	clause := tagged("c001", "乙は、引渡しから1年間に限り契約不適合責任を負うものとする。")

	if findings := DetectMissingTimeLimit(clause); len(findings) != 0 {
		t.Errorf("Expected no finding when a duration is stated, got %d", len(findings))
	}
}

func TestDetectMissingTimeLimit_ExplicitlyUnlimited(t *testing.T) {
	clause := tagged("c001", "乙は、本件業務に関する瑕疵責任を無期限に負うものとする。")

	findings := DetectMissingTimeLimit(clause)
	if len(findings) != 1 {
		t.Fatalf("Expected one finding, got %d", len(findings))
	}
	if !strings.Contains(findings[0].Rationale, "unlimited") {
		t.Errorf("Expected the rationale to note the explicit unlimited duration, got %q", findings[0].Rationale)
	}
}

func TestDetectMissingTimeLimit_StatutoryException(t *testing.T) {
	clause := tagged("c001", "乙は、故意又は重大な過失による場合に限り損害賠償責任を負う。")

	if findings := DetectMissingTimeLimit(clause); len(findings) != 0 {
		t.Errorf("Expected the intent/gross-negligence exception to apply, got %d findings", len(findings))
	}
}

func TestDetectMissingTimeLimit_ConfidentialityIsMedium(t *testing.T) {
	clause := tagged("c001", "乙は、秘密情報を第三者に漏らしてはならない。")

	findings := DetectMissingTimeLimit(clause)
	if len(findings) != 1 {
		t.Fatalf("Expected one finding, got %d", len(findings))
	}
	if findings[0].Severity != model.SeverityMedium {
		t.Errorf("Expected MEDIUM for unbounded confidentiality, got %s", findings[0].Severity)
	}
}

func TestDetectMissingTimeLimit_NoTimeSensitiveEffect(t *testing.T) {
	clause := tagged("c001", "本契約の準拠法は日本法とする。")

	if findings := DetectMissingTimeLimit(clause); len(findings) != 0 {
		t.Errorf("Expected no finding without a time-sensitive effect, got %d", len(findings))
	}
}

func TestExtractEffectTags(t *testing.T) {
	tags := ExtractEffectTags("乙が本契約に違反した場合、甲は本契約を解除することができ、損害賠償を請求できる。")
	want := map[string]bool{EffectTerminationRight: true, EffectDamages: true}
	for tag := range want {
		found := false
		for _, got := range tags {
			if got == tag {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected tag %s in %v", tag, tags)
		}
	}

	for i := 1; i < len(tags); i++ {
		if tags[i-1] > tags[i] {
			t.Error("Expected tags to be sorted")
		}
	}
}

func TestExtractTriggers(t *testing.T) {
	triggers := ExtractTriggers("乙につき破産手続開始の申立てがあった場合、又は支払停止があった場合。")
	found := map[string]bool{}
	for _, tr := range triggers {
		found[tr] = true
	}
	if !found["insolvency"] {
		t.Errorf("Expected insolvency trigger, got %v", triggers)
	}
	if !found["financial-incident"] {
		t.Errorf("Expected financial-incident trigger, got %v", triggers)
	}

	if got := ExtractTriggers("本契約の目的を定める。"); len(got) != 0 {
		t.Errorf("Expected no triggers for neutral text, got %v", got)
	}
}
