package policy

import "regexp"

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}\b`)
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)
)

// Placeholder tokens substituted for detected PII. They appear verbatim in
// prompts and call log records, so they are part of the observable contract.
const (
	EmailPlaceholder = "[EMAIL]"
	PhonePlaceholder = "[PHONE]"
	CardPlaceholder  = "[CARD]"
)

// RedactPII masks emails, phone numbers and payment-card-like digit runs.
// Families run in a fixed order (email, phone, card) against the progressively
// masked string, so a placeholder substituted by an earlier family can never be
// re-matched by a later one. The flag reports whether any family matched.
func RedactPII(input string) (masked string, hadPII bool) {
	if input == "" {
		return input, false
	}

	out := input

	if emailPattern.MatchString(out) {
		hadPII = true
		out = emailPattern.ReplaceAllString(out, EmailPlaceholder)
	}
	if phonePattern.MatchString(out) {
		hadPII = true
		out = phonePattern.ReplaceAllString(out, PhonePlaceholder)
	}
	if cardPattern.MatchString(out) {
		hadPII = true
		out = cardPattern.ReplaceAllString(out, CardPlaceholder)
	}

	return out, hadPII
}
