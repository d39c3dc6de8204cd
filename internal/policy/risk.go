package policy

import "strings"

// RiskCategory is the result of scanning a raw customer text for content the
// service must not answer with generated text.
type RiskCategory string

const (
	RiskNormal     RiskCategory = "normal"
	RiskUnsafe     RiskCategory = "unsafe"
	RiskOutOfScope RiskCategory = "out_of_scope"
)

var (
	unsafeKeywords = []string{
		"suicide",
		"kill myself",
		"kill him",
		"kill her",
		"murder",
		"self harm",
		"self-harm",
		"bomb",
		"explosive",
		"terrorist",
	}
	outOfScopeKeywords = []string{
		"diagnose",
		"medical advice",
		"medicine for",
		"prescription",
		"crypto trading",
		"stock tip",
		"investment advice",
		"tax advice",
		"legal advice",
	}
)

// ClassifyRisk runs a case-insensitive substring scan of the raw text against
// the unsafe list first, then the out-of-scope list. Checking unsafe first is a
// deliberate precedence: a message carrying both cues is always the more severe
// category. Callers must pass text before redaction; masking could hide the
// exact substrings this scan depends on.
func ClassifyRisk(text string) RiskCategory {
	s := strings.ToLower(text)

	for _, kw := range unsafeKeywords {
		if strings.Contains(s, kw) {
			return RiskUnsafe
		}
	}
	for _, kw := range outOfScopeKeywords {
		if strings.Contains(s, kw) {
			return RiskOutOfScope
		}
	}
	return RiskNormal
}
