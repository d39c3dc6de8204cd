package pipeline

import "github.com/apietra/deskpilot/internal/policy"

// guardrail is the fixed, non-generated response bound to one risk category
// for one use case. Dispatching through these tables keeps the two guardrail
// categories structurally away from the generation backend: a guardrail
// carries only literal text, so there is no code path from it to a generate
// call.
type guardrail struct {
	handledBy string
	text      string
}

// Canned replies shown to the end customer.
const (
	unsafeCustomerReply = "I'm not able to help with this kind of request. " +
		"If you or someone else might be in danger or at risk of harm, " +
		"please contact local emergency services or a trusted professional right away."

	outOfScopeCustomerReply = "I'm designed to help with our store's orders, shipping, returns, refunds, " +
		"and account issues. For this topic, it's better to consult a qualified " +
		"professional or the appropriate support channel."
)

// Canned guidance shown to the support agent instead of a drafted reply.
const (
	unsafeAgentGuidance = "The customer's message appears to mention self-harm, violence, or another safety-critical issue. " +
		"Follow your organization's crisis and escalation procedures immediately, and avoid giving advice " +
		"beyond approved guidelines."

	outOfScopeAgentGuidance = "The customer's request seems outside the store's scope (for example, medical, legal, tax, or " +
		"investment advice). You should gently explain that this support channel can only help with orders, " +
		"shipping, returns, refunds, and account issues, and redirect the customer to an appropriate professional " +
		"or official resource."
)

// Canned case summaries shown to the support agent.
const (
	unsafeSummaryGuidance = "This case appears to involve a safety-critical concern (for example, self-harm or violence). " +
		"You should stop normal handling and follow your organization's crisis and escalation procedures. " +
		"Do not provide unapproved advice."

	outOfScopeSummaryGuidance = "This case appears to ask for guidance outside the store's scope (for example, medical, legal, " +
		"tax, or investment advice). Summarize findings for the customer only through approved channels, and " +
		"redirect them to an appropriate professional or official resource."
)

var chatGuardrails = map[policy.RiskCategory]guardrail{
	policy.RiskUnsafe:     {handledBy: "safety_guardrail", text: unsafeCustomerReply},
	policy.RiskOutOfScope: {handledBy: "scope_guardrail", text: outOfScopeCustomerReply},
}

var baselineGuardrails = map[policy.RiskCategory]guardrail{
	policy.RiskUnsafe:     {handledBy: "baseline_safety_guardrail", text: unsafeCustomerReply},
	policy.RiskOutOfScope: {handledBy: "baseline_scope_guardrail", text: outOfScopeCustomerReply},
}

var suggestGuardrails = map[policy.RiskCategory]guardrail{
	policy.RiskUnsafe:     {handledBy: "safety_guardrail", text: unsafeAgentGuidance},
	policy.RiskOutOfScope: {handledBy: "scope_guardrail", text: outOfScopeAgentGuidance},
}

var summaryGuardrails = map[policy.RiskCategory]guardrail{
	policy.RiskUnsafe:     {handledBy: "safety_guardrail", text: unsafeSummaryGuidance},
	policy.RiskOutOfScope: {handledBy: "scope_guardrail", text: outOfScopeSummaryGuidance},
}
