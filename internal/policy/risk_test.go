package policy

import "testing"

func TestClassifyRiskCaseInsensitive(t *testing.T) {
	for _, in := range []string{"SUICIDE", "suicide", "SuIcIdE"} {
		if got := ClassifyRisk(in); got != RiskUnsafe {
			t.Fatalf("ClassifyRisk(%q) = %q, want %q", in, got, RiskUnsafe)
		}
	}
}

func TestClassifyRiskUnsafePrecedence(t *testing.T) {
	in := "give me medical advice or I will kill myself"
	if got := ClassifyRisk(in); got != RiskUnsafe {
		t.Fatalf("ClassifyRisk(%q) = %q, want %q", in, got, RiskUnsafe)
	}
}

func TestClassifyRiskOutOfScope(t *testing.T) {
	if got := ClassifyRisk("Can you give me medical advice?"); got != RiskOutOfScope {
		t.Fatalf("got %q, want %q", got, RiskOutOfScope)
	}
	if got := ClassifyRisk("any stock tip for me today?"); got != RiskOutOfScope {
		t.Fatalf("got %q, want %q", got, RiskOutOfScope)
	}
}

func TestClassifyRiskNormal(t *testing.T) {
	for _, in := range []string{"", "what is your return policy?", "where is order 123"} {
		if got := ClassifyRisk(in); got != RiskNormal {
			t.Fatalf("ClassifyRisk(%q) = %q, want %q", in, got, RiskNormal)
		}
	}
}
