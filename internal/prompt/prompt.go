// Package prompt renders the text prompts sent to the generation backend.
// Every renderer is a pure function over its inputs: identical inputs produce
// byte-identical output, which lets tests pin exact rendered text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/apietra/deskpilot/internal/chat"
	"github.com/apietra/deskpilot/internal/knowledge"
)

const chatInstructions = `You are a helpful, polite customer service assistant for an e-commerce store.
You answer questions about orders, shipping, returns, refunds, and accounts.
You must rely on the knowledge base snippets provided to you. If the answer
is not clearly supported by them, say you are not sure and suggest contacting
a human agent instead of guessing.
Keep answers short, clear, and friendly.`

const baselineInstructions = `You are a helpful, polite customer service assistant for an e-commerce store.
You answer questions about orders, shipping, returns, refunds, and accounts.
If you are not sure about the answer, say you are not sure and suggest contacting a human agent.
Keep answers short, clear, and friendly.`

const suggestInstructions = `You are an AI assistant helping CUSTOMER SUPPORT AGENTS.
Your job is to draft clear, polite, and accurate replies that the agent can edit before sending.

Context:
- The business is an e-commerce store (orders, shipping, returns, refunds, accounts).
- You MUST follow the knowledge base snippets if they are provided.
- If the knowledge base doesn't clearly answer something, say you are not fully sure and suggest
  the agent escalate or check with a supervisor.
- Use a friendly, concise tone.
- Do NOT invent order numbers, tracking numbers, or policy details that are not in the snippets.`

const summaryInstructions = `You are an AI assistant helping CUSTOMER SUPPORT AGENTS understand a case quickly.

Your task:
- Read the conversation between the customer and the agent.
- Produce a short summary (3–6 sentences).
- Then list 3–6 key points as bullet points (issues, promises, next steps).
- Do not hallucinate extra facts; only use what is in the conversation.`

// NoSnippetsFallback is the sentence emitted in place of the snippet block
// when retrieval came back empty.
const NoSnippetsFallback = "No specific knowledge base snippets were found. " +
	"Answer only if it is generic customer-service knowledge; " +
	"otherwise, say you are not sure and suggest a human agent."

const noKBSnippetFallback = "No specific KB snippet was found. Answer only using generic customer-service best practices, " +
	"and recommend checking or escalating if needed."

const emptyConversation = "(no previous messages)"

// Chat renders the retrieval-augmented customer chat prompt.
func Chat(history []chat.Message, query string, snippets []knowledge.Snippet) string {
	lines := []string{chatInstructions, ""}

	lines = append(lines, "Conversation so far:")
	lines = appendConversation(lines, history, "User", "Assistant")

	if len(snippets) > 0 {
		lines = append(lines, "", "Knowledge base snippets (treat these as ground truth if relevant):")
		lines = appendSnippets(lines, snippets)
	} else {
		lines = append(lines, "", NoSnippetsFallback)
	}

	lines = append(lines, "", fmt.Sprintf("User: %s", query), "Assistant:")
	return strings.Join(lines, "\n")
}

// ChatBaseline renders the chat prompt without any snippet block. It exists
// for quality comparison against the retrieval-augmented variant.
func ChatBaseline(history []chat.Message, query string) string {
	lines := []string{baselineInstructions, ""}

	lines = append(lines, "Conversation so far:")
	lines = appendConversation(lines, history, "User", "Assistant")

	lines = append(lines, "", fmt.Sprintf("User: %s", query), "Assistant:")
	return strings.Join(lines, "\n")
}

// SuggestReply renders the agent-copilot prompt asking for exactly one draft
// reply the agent can edit before sending.
func SuggestReply(history []chat.Message, customerMessage string, snippets []knowledge.Snippet, topicHint string) string {
	lines := []string{suggestInstructions, ""}

	lines = append(lines, "Conversation so far:")
	lines = append(lines, formatConversation(history, "Customer", "Agent"))
	lines = append(lines, "")

	lines = append(lines, "Latest customer message:")
	lines = append(lines, fmt.Sprintf("Customer: %s", customerMessage))
	lines = append(lines, "")

	if len(snippets) > 0 {
		lines = append(lines, "Relevant knowledge base snippets (treat these as ground truth):")
		lines = appendSnippets(lines, snippets)
	} else {
		lines = append(lines, noKBSnippetFallback, "")
	}

	if topicHint != "" {
		lines = append(lines, fmt.Sprintf("Topic hint: %s", topicHint))
	}

	lines = append(lines,
		"Now, draft ONE suggested reply the agent can send to the customer. "+
			"Do not mention that you used a knowledge base in your answer.")
	lines = append(lines, "Suggested reply:")

	return strings.Join(lines, "\n")
}

// Summary renders the case-summarization prompt over a full conversation.
func Summary(conversation []chat.Message) string {
	lines := []string{summaryInstructions, ""}
	lines = append(lines, "Conversation:")
	lines = append(lines, formatConversation(conversation, "Customer", "Agent"))
	lines = append(lines, "", "Now provide the summary, then key bullet points.")
	return strings.Join(lines, "\n")
}

func appendConversation(lines []string, history []chat.Message, userLabel, assistantLabel string) []string {
	if len(history) == 0 {
		return append(lines, emptyConversation)
	}
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", roleLabel(msg.Role, userLabel, assistantLabel), msg.Content))
	}
	return lines
}

func formatConversation(conversation []chat.Message, userLabel, assistantLabel string) string {
	if len(conversation) == 0 {
		return emptyConversation
	}
	parts := make([]string, 0, len(conversation))
	for _, msg := range conversation {
		parts = append(parts, fmt.Sprintf("%s: %s", roleLabel(msg.Role, userLabel, assistantLabel), msg.Content))
	}
	return strings.Join(parts, "\n")
}

// appendSnippets numbers snippets 1..k in the order the retriever returned
// them; the numbering is part of the prompt contract.
func appendSnippets(lines []string, snippets []knowledge.Snippet) []string {
	for i, s := range snippets {
		source := s.Source
		if source == "" {
			source = "kb"
		}
		lines = append(lines, fmt.Sprintf("[%d] Source: %s", i+1, source))
		lines = append(lines, s.Text)
		lines = append(lines, "")
	}
	return lines
}

func roleLabel(r chat.Role, userLabel, assistantLabel string) string {
	if r == chat.RoleUser {
		return userLabel
	}
	return assistantLabel
}
