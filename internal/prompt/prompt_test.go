package prompt

import (
	"strings"
	"testing"

	"github.com/apietra/deskpilot/internal/chat"
	"github.com/apietra/deskpilot/internal/knowledge"
)

var sampleSnippets = []knowledge.Snippet{
	{Text: "Returns are accepted within 30 days.", Source: "kb/returns.md", Distance: 0.12, Index: 1},
	{Text: "Refunds are issued to the original payment method.", Source: "kb/refunds.md", Distance: 0.19, Index: 2},
}

func TestChatNumbersSnippetsFromOne(t *testing.T) {
	out := Chat(nil, "What is your return policy?", sampleSnippets)

	if !strings.Contains(out, "[1] Source: kb/returns.md") {
		t.Fatalf("missing first snippet header:\n%s", out)
	}
	if !strings.Contains(out, "[2] Source: kb/refunds.md") {
		t.Fatalf("missing second snippet header:\n%s", out)
	}
	if strings.Contains(out, NoSnippetsFallback) {
		t.Fatalf("fallback sentence present despite snippets:\n%s", out)
	}
	if !strings.HasSuffix(out, "Assistant:") {
		t.Fatalf("prompt does not end with model cue:\n%s", out)
	}
}

func TestChatEmptyRetrievalUsesFallbackSentence(t *testing.T) {
	out := Chat(nil, "What is your return policy?", nil)

	if !strings.Contains(out, NoSnippetsFallback) {
		t.Fatalf("missing fallback sentence:\n%s", out)
	}
	if strings.Contains(out, "[1] Source:") {
		t.Fatalf("unexpected snippet block:\n%s", out)
	}
}

func TestChatEmptyHistoryMarker(t *testing.T) {
	out := Chat(nil, "hello", nil)
	if !strings.Contains(out, "Conversation so far:\n(no previous messages)") {
		t.Fatalf("missing empty-history marker:\n%s", out)
	}
}

func TestChatHistoryRoleLabels(t *testing.T) {
	history := []chat.Message{
		{Role: chat.RoleUser, Content: "Where is my order?"},
		{Role: chat.RoleAssistant, Content: "Let me check."},
	}
	out := Chat(history, "Any update?", nil)
	if !strings.Contains(out, "User: Where is my order?") {
		t.Fatalf("missing user turn:\n%s", out)
	}
	if !strings.Contains(out, "Assistant: Let me check.") {
		t.Fatalf("missing assistant turn:\n%s", out)
	}
}

func TestChatBaselineHasNoSnippetBlock(t *testing.T) {
	out := ChatBaseline(nil, "What is your return policy?")
	if strings.Contains(out, "Knowledge base snippets") || strings.Contains(out, NoSnippetsFallback) {
		t.Fatalf("baseline prompt mentions snippets:\n%s", out)
	}
	if !strings.HasSuffix(out, "Assistant:") {
		t.Fatalf("prompt does not end with model cue:\n%s", out)
	}
}

func TestSuggestReplyUsesCopilotLabels(t *testing.T) {
	history := []chat.Message{
		{Role: chat.RoleUser, Content: "My parcel is late."},
		{Role: chat.RoleAssistant, Content: "Sorry about that."},
	}
	out := SuggestReply(history, "It has been two weeks now.", sampleSnippets, "shipping")

	if !strings.Contains(out, "Customer: My parcel is late.") {
		t.Fatalf("missing customer label:\n%s", out)
	}
	if !strings.Contains(out, "Agent: Sorry about that.") {
		t.Fatalf("missing agent label:\n%s", out)
	}
	if !strings.Contains(out, "Topic hint: shipping") {
		t.Fatalf("missing topic hint line:\n%s", out)
	}
	if !strings.HasSuffix(out, "Suggested reply:") {
		t.Fatalf("prompt does not end with draft cue:\n%s", out)
	}
}

func TestSuggestReplyOmitsTopicHintWhenEmpty(t *testing.T) {
	out := SuggestReply(nil, "Where is my refund?", nil, "")
	if strings.Contains(out, "Topic hint:") {
		t.Fatalf("unexpected topic hint line:\n%s", out)
	}
	if !strings.Contains(out, "No specific KB snippet was found.") {
		t.Fatalf("missing copilot fallback sentence:\n%s", out)
	}
}

func TestSummaryRendersFullConversation(t *testing.T) {
	conversation := []chat.Message{
		{Role: chat.RoleUser, Content: "I was charged twice."},
		{Role: chat.RoleAssistant, Content: "I can see the duplicate charge."},
	}
	out := Summary(conversation)
	if !strings.Contains(out, "Customer: I was charged twice.") {
		t.Fatalf("missing customer turn:\n%s", out)
	}
	if !strings.Contains(out, "Agent: I can see the duplicate charge.") {
		t.Fatalf("missing agent turn:\n%s", out)
	}
	if !strings.HasSuffix(out, "Now provide the summary, then key bullet points.") {
		t.Fatalf("missing final instruction:\n%s", out)
	}
}

func TestRenderersAreDeterministic(t *testing.T) {
	history := []chat.Message{{Role: chat.RoleUser, Content: "hi"}}

	if a, b := Chat(history, "q", sampleSnippets), Chat(history, "q", sampleSnippets); a != b {
		t.Fatalf("Chat not deterministic")
	}
	if a, b := ChatBaseline(history, "q"), ChatBaseline(history, "q"); a != b {
		t.Fatalf("ChatBaseline not deterministic")
	}
	if a, b := SuggestReply(history, "m", sampleSnippets, "h"), SuggestReply(history, "m", sampleSnippets, "h"); a != b {
		t.Fatalf("SuggestReply not deterministic")
	}
	if a, b := Summary(history), Summary(history); a != b {
		t.Fatalf("Summary not deterministic")
	}
}
